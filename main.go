package main

import "github.com/openjuris/lexbank/cmd"

func main() {
	cmd.Execute()
}
