package main

import "github.com/joho/godotenv"

func main() {
	// Load .env if present so WEATHERFWD_* overrides work outside systemd.
	_ = godotenv.Load(".env")
	Execute()
}
