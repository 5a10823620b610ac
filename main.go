package main

import "github.com/Rorical/RoriHost/cmd"

func main() {
	cmd.Execute()
}
