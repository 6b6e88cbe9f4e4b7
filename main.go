package main

import "dating-backend/cmd"

func main() {
	cmd.Run()
}
