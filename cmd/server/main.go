package main

import (
	"log"

	api "github.com/tripscheduler/tripscheduler/cmd/api"
)

func main() {
	if err := api.Run(); err != nil {
		log.Fatal(err)
	}
}
