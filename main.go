package main

import "github.com/frahmantamala/meal-ticket/cmd"

func main() {
	cmd.Execute()
}
