package main

import cmd "github.com/kerbaras/pokedex/cmd/pokedex"

func main() {
	cmd.Execute()
}
