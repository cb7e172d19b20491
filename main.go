package main

import "github.com/jsphweid/abcplay/cmd"

func main() {
	cmd.Execute()
}
