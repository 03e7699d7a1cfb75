package main

import "github.com/UCPHszf/bookstore-assignment2/cmd"

func main() {
	cmd.Execute()
}
