package main

import "github.com/Digital-Shane/torrent-tidy/internal/cmd"

func main() {
	cmd.Execute()
}
