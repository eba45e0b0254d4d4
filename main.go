package main

import "github.com/ikasoba/locanote/cmd"

func main() {
	cmd.Execute()
}
