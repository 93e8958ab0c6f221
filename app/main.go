package main

import "github.com/tasklink/tasklink/app/cmd"

func main() {
	cmd.Execute()
}

// @title TaskLink API
// @version 0.0.1
// @description A multi-tenant project and task tracker
// @host localhost:8080
// @BasePath /
