package output

type ConfigPort interface {
	Get(key string) string
	GetWithDefault(key string, defaultValue string) string
	GetBool(key string, defaultValue bool) bool
}
