// Command xmlfmt reformats XML and TEI documents.
//
// Usage:
//
//	xmlfmt [flags] [path ...]
//
// With no paths it formats standard input to standard output. Otherwise
// each file is formatted to standard output, or rewritten in place with -w,
// or just listed with -l when its formatting differs. Markdown files (or
// any file under -md) have their ```xml fenced blocks formatted instead.
//
// Settings are read from the nearest .xmlfmt file above the working
// directory, one "key value..." per line; flags override them.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/jcorbin/xmlfmt/internal/fmtutil"
)

func main() {
	logOut := fmtutil.PrefixWriter("xmlfmt: ", os.Stderr)
	log.SetOutput(logOut)
	log.SetFlags(0)

	cmd := command{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		logOut: logOut,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.main(ctx, os.Args[1:])
	stop()
	if err != nil && !errors.Is(err, errReported) && !errors.Is(err, errUsage) {
		log.Print(err)
	}
	logOut.Close()
	if errors.Is(err, errUsage) {
		os.Exit(2)
	} else if err != nil {
		os.Exit(1)
	}
}
