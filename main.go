package main

import "github.com/samhoang/ccplus/cmd"

func main() {
	cmd.Execute()
}
