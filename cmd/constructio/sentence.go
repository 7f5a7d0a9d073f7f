package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/constructio/construct"
	"github.com/cours-de-latin/constructio/render"
)

func sentenceCommand() *cli.Command {
	return &cli.Command{
		Name:      "sentence",
		Usage:     "print one sentence with its tokens and tags",
		ArgsUsage: "<sid>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "corpus", Usage: "corpus path (.json or sqlite db)", Required: true},
			&cli.StringFlag{Name: "tags", Usage: "tags path (.json or sqlite db)"},
			&cli.BoolFlag{Name: "no-color", Usage: "plain text output"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected one sid argument, got %d", c.NArg())
			}
			return sentenceAction(c.String("corpus"), c.String("tags"), c.Args().First(), c.Bool("no-color"))
		},
	}
}

func sentenceAction(corpusPath, tagsPath, sid string, noColor bool) error {
	pool := &Pool{}
	defer pool.Close()

	corpus, err := NewCorpusRepository(pool, corpusPath)
	if err != nil {
		return err
	}
	s, err := corpus.Sentence(sid)
	if err != nil {
		return err
	}

	var tags []construct.Tag
	if tagsPath != "" {
		store, err := NewTagRepository(pool, tagsPath)
		if err != nil {
			return err
		}
		tags, err = store.Tags(sid)
		if err != nil {
			tags = nil
		}
	}

	r := render.NewRenderer()
	r.HasColor = !noColor
	r.HasDetail = true
	r.Sentence(s, tags)
	return nil
}
