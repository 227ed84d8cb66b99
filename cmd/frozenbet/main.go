// frozenbet はアイスホッケーの大会・チーム・試合・ユーザーを決定的に生成して返すモックAPI。
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/frozenbet/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "frozenbet: %v\n", err)
		os.Exit(1)
	}
}
