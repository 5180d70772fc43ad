// readmap loads a FASTA reference and a FASTQ read set, maps each read with
// seed-and-extend, and reports a histogram of the seed_attempt at which each
// successful mapping was found.
package main

import (
	"flag"
	"fmt"
	"os"

	grerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/dnaseq/fmindex/encoding/fasta"
	"github.com/dnaseq/fmindex/encoding/fastq"
	"github.com/dnaseq/fmindex/readmapper"
)

var (
	fastaPath     = flag.String("fasta", "", "Input FASTA reference path")
	fastqPath     = flag.String("fastq", "", "Input FASTQ reads path")
	saStep        = flag.Int("sa-step", 128, "Suffix array sampling step (S_s)")
	rankStep      = flag.Int("rank-step", 128, "Rank table sampling step (S_r)")
	seedLength    = flag.Int("seed-length", 25, "Seed length used by map_read")
	maxSeeds      = flag.Int("max-seeds", 3, "Maximum number of seed attempts per read")
	indexOutPath  = flag.String("index-out", "", "If set, write the constructed index to this path instead of the FASTA-derived one")
	indexInPath   = flag.String("index-in", "", "If set, load a previously-serialized index instead of building one from -fasta")
	gzipIndex     = flag.Bool("index-gzip", false, "Gzip-compress the persisted index written by -index-out / expected by -index-in")
	histogramPath = flag.String("histogram-png", "", "If set, write a PNG seed_attempt histogram to this path")
)

func main() {
	flag.Parse()

	mapper, err := loadOrBuildMapper()
	if err != nil {
		log.Fatalf("readmap: %v", err)
	}

	if *indexOutPath != "" {
		if err := writeIndex(mapper, *indexOutPath); err != nil {
			log.Fatalf("readmap: writing index: %v", err)
		}
	}

	if *fastqPath == "" {
		return
	}

	histogram, err := mapReads(mapper)
	if err != nil {
		log.Fatalf("readmap: %v", err)
	}

	if err := histogram.WriteText(os.Stdout); err != nil {
		log.Fatalf("readmap: %v", err)
	}
	if *histogramPath != "" {
		if err := writeHistogramPNG(histogram, *histogramPath); err != nil {
			log.Fatalf("readmap: writing histogram png: %v", err)
		}
	}
}

func loadOrBuildMapper() (*readmapper.ReadMapper, error) {
	if *indexInPath != "" {
		f, err := os.Open(*indexInPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts := serializeOpts()
		return readmapper.Deserialize(f, opts...)
	}

	if *fastaPath == "" {
		return nil, fmt.Errorf("one of -fasta or -index-in is required")
	}
	f, err := os.Open(*fastaPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reference, err := fasta.Load(f)
	if err != nil {
		return nil, err
	}
	log.Printf("readmap: loaded reference of length %d from %s", len(reference), *fastaPath)

	return readmapper.NewWithSteps(reference, *saStep, *rankStep)
}

func serializeOpts() []readmapper.SerializeOption {
	if *gzipIndex {
		return []readmapper.SerializeOption{readmapper.WithGzip()}
	}
	return nil
}

func writeIndex(mapper *readmapper.ReadMapper, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return readmapper.Serialize(mapper, f, serializeOpts()...)
}

func mapReads(mapper *readmapper.ReadMapper) (*readmapper.SeedHistogram, error) {
	f, err := os.Open(*fastqPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := fastq.NewScanner(f)
	histogram := readmapper.NewSeedHistogram()
	recordErrs := grerrors.Once{}
	nReads := 0

	for scanner.Scan() {
		nReads++
		result, err := mapper.MapRead(scanner.Read(), *seedLength, *maxSeeds)
		if err != nil {
			recordErrs.Set(err)
			continue
		}
		histogram.Add(result)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Printf("readmap: mapped %d reads from %s", nReads, *fastqPath)
	return histogram, recordErrs.Err()
}

func writeHistogramPNG(histogram *readmapper.SeedHistogram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return histogram.WritePNG(f)
}
