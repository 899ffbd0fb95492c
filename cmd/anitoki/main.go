// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command anitoki prints the anime broadcast schedule in the caller's
// timezone.
//
// It talks to the upstream sources directly, with no database or cache:
//
//	anitoki weekly --tz Europe/Berlin
//	anitoki today --title romaji --genres action,fantasy
//	anitoki airing --locale ja-JP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}
