package sample

type Config struct {
	Name string
}

func Name(c *Config) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func Broken() string {
	var c *Config
	return c.Name
}
