package main

import "github.com/Zachkp/portfolio-cms/cmd"

func main() {
	cmd.Execute()
}
