package main

import "fmt"

type config struct {
	name string
}

func isNil(c *config) bool {
	return c == nil
}

func show(c *config) {
	if isNil(c) {
		fmt.Println(c.name)
		return
	}
	fmt.Println(c.name)
}

func redundant(c *config) string {
	name := c.name
	if c == nil {
		return ""
	}
	return name
}

func main() {
	show(&config{name: "app"})
	fmt.Println(redundant(&config{}))
}
