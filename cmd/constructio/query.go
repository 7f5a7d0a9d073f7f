package main

import (
	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/constructio/query"
	"github.com/cours-de-latin/constructio/render"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "interactive prompt over a tagged corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "corpus", Usage: "corpus path (.json or sqlite db)", Required: true},
			&cli.StringFlag{Name: "tags", Usage: "tags path (.json or sqlite db)", Required: true},
		},
		Action: func(c *cli.Context) error {
			return queryAction(c.String("corpus"), c.String("tags"))
		},
	}
}

func queryAction(corpusPath, tagsPath string) error {
	pool := &Pool{}
	defer pool.Close()

	corpus, err := NewCorpusRepository(pool, corpusPath)
	if err != nil {
		return err
	}
	store, err := NewTagRepository(pool, tagsPath)
	if err != nil {
		return err
	}

	h := query.NewHandler(corpus, store, render.NewRenderer())
	return h.Run()
}
