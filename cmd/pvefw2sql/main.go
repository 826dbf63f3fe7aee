// pvefw2sql - Proxmox Firewall log to SQL converter
//
// pvefw2sql reads PVEFW log lines and writes CREATE TABLE and INSERT
// statements for loading them into a relational database.
package main

import (
	"os"

	"github.com/ccollicutt/pvefw2sql/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
