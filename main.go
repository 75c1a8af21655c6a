package main

import "github.com/am3lue/ProjectManagementSystem/cmd"

func main() {
	cmd.Execute()
}
