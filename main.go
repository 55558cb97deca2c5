package main

import "github.com/MyCarrier-DevOps/go-flowconfig/cmd"

func main() {
	cmd.Execute()
}
