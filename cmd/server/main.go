package main

import "github.com/doafacil/doafacil/cmd"

func main() {
	cmd.Execute()
}
