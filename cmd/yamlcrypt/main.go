// Package main provides the yamlcrypt CLI for encrypting and decrypting
// scalar values inside YAML files.
package main

import "github.com/yamlcrypt/yamlcrypt/cmd/yamlcrypt/commands"

func main() {
	commands.Execute(Version)
}
