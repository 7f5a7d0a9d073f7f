package main

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/constructio/construct"
	sent "github.com/cours-de-latin/constructio/sentence"
	"github.com/cours-de-latin/constructio/storage"
)

func tagCommand() *cli.Command {
	return &cli.Command{
		Name:  "tag",
		Usage: "tag every sentence of a corpus and write the constructions mapping",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "corpus", Usage: "corpus path (.json or sqlite db)", Required: true},
			&cli.StringFlag{Name: "out", Usage: "output path for tags (.json or sqlite db)", Required: true},
			&cli.IntFlag{Name: "workers", Usage: "parallel tagging workers", Value: runtime.NumCPU()},
		},
		Action: func(c *cli.Context) error {
			return tagAction(c.String("corpus"), c.String("out"), c.Int("workers"))
		},
	}
}

type tagResult struct {
	sid  string
	tags []construct.Tag
}

func tagAction(corpusPath, outPath string, workers int) error {
	pool := &Pool{}
	defer pool.Close()

	corpus, err := NewCorpusRepository(pool, corpusPath)
	if err != nil {
		return err
	}

	sentences, err := allSentences(corpus)
	if err != nil {
		return err
	}

	workers = max(workers, 1)

	uiprogress.Start()
	bar := uiprogress.AddBar(len(sentences))
	bar.AppendCompleted()
	bar.PrependElapsed()

	jobs := make(chan sent.Sentence)
	results := make(chan tagResult)

	var diag construct.Diagnostics
	var diagMu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tagger := construct.NewTagger()
			for s := range jobs {
				tags := tagger.TagSentence(s.Tokens)
				if len(tags) > 0 {
					results <- tagResult{sid: s.Sid, tags: tags}
				}
				bar.Incr()
			}
			diagMu.Lock()
			diag.Merge(tagger.Diagnostics())
			diagMu.Unlock()
		}()
	}

	go func() {
		for _, s := range sentences {
			jobs <- s
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	bySid := make(map[string][]construct.Tag)
	for r := range results {
		bySid[r.sid] = r.tags
	}
	uiprogress.Stop()

	store, err := NewTagRepository(pool, outPath)
	if err != nil {
		return err
	}
	meta := storage.Meta{Source: corpusPath, Tags: construct.Types()}
	if err := store.Write(meta, bySid); err != nil {
		return fmt.Errorf("failed to write tags: %w", err)
	}

	fmt.Printf("Tagged %d/%d sentences, %d tags", diag.TaggedSentences, diag.Sentences, diag.Tags)
	if diag.CyclicHeads > 0 {
		fmt.Printf(" (%d sentences with cyclic heads)", diag.CyclicHeads)
	}
	fmt.Println()
	return nil
}

// allSentences reads the full corpus in chapter order.
func allSentences(corpus storage.CorpusReader) ([]sent.Sentence, error) {
	chapters, err := corpus.Chapters()
	if err != nil {
		return nil, err
	}
	var out []sent.Sentence
	for _, ch := range chapters {
		sentences, err := corpus.Sentences(ch)
		if err != nil {
			return nil, fmt.Errorf("failed to read chapter %s: %w", ch, err)
		}
		out = append(out, sentences...)
	}
	return out, nil
}
