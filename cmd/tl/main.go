package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"task-list/internal/cli"
)

func main() {
	env := getEnvironment()
	gin.SetMode(env.ginMode())

	factory := NewRepositoryFactory(env)
	root := cli.NewRootCommand(cli.WithRepositoryOpener(factory.CreateRepository))

	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
