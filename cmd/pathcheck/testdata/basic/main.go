package main

import "fmt"

type config struct {
	name string
}

func load(path string) *config {
	if path == "" {
		return nil
	}
	return &config{name: path}
}

func main() {
	var c *config
	fmt.Println(c.name)

	if d := load("app.yaml"); d != nil {
		fmt.Println(d.name)
	}
}

func redundant(c *config) string {
	name := c.name
	if c == nil {
		return ""
	}
	return name
}
