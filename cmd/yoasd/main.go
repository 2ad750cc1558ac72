package main

import (
	"context"
	"log"

	"github.com/yoas/yoas/pkg/api"
)

func main() {
	if err := api.Serve(context.Background()); err != nil {
		log.Fatal(err)
	}
}
