package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func docCommand() *cli.Command {
	return &cli.Command{
		Name:  "doc",
		Usage: "list the chapters of a corpus with their sentence counts",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "corpus", Usage: "corpus path (.json or sqlite db)", Required: true},
		},
		Action: func(c *cli.Context) error {
			return docAction(c.String("corpus"))
		},
	}
}

func docAction(corpusPath string) error {
	pool := &Pool{}
	defer pool.Close()

	corpus, err := NewCorpusRepository(pool, corpusPath)
	if err != nil {
		return err
	}

	chapters, err := corpus.Chapters()
	if err != nil {
		return err
	}

	total := 0
	for _, ch := range chapters {
		sentences, err := corpus.Sentences(ch)
		if err != nil {
			return err
		}
		total += len(sentences)
		fmt.Printf("%-4s  %d sentences\n", ch, len(sentences))
	}
	fmt.Printf("total %d chapters, %d sentences\n", len(chapters), total)
	return nil
}
