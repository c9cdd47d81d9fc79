package main

import (
	"context"
	"os"

	"github.com/ebse-lab/sevscope/pkg/cli"
	"github.com/ebse-lab/sevscope/pkg/utils/apperr"
)

func main() {
	ctx := context.Background()
	if err := cli.Run(ctx, os.Args); err != nil {
		apperr.Handle(ctx, err)
		os.Exit(1)
	}
}
