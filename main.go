package main

import "github.com/vibast-solutions/ms-go-directory/cmd"

func main() {
	cmd.Execute()
}
