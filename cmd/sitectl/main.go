package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: sitectl <normalize|hash-password> [args]")
	}

	switch os.Args[1] {
	case "normalize":
		RunNormalize(os.Args[2:])
	case "hash-password":
		RunHashPassword(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
