package main

import (
	"log"

	"github.com/talx-hub/gopher-loyalty/internal/service"
)

func main() {
	if err := service.RunServer(); err != nil {
		log.Fatal(err)
	}
}
