// Command sensei keeps the Shortcut Sensei pages consistent and serves them locally.
package main

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	Execute()
}
