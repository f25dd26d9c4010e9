package main

import "github.com/vilhena/ponto/cmd"

func main() {
	cmd.Execute()
}
