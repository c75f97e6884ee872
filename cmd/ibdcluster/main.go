// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"fmt"
	"os"
	"time"

	ibdcluster "github.com/browning-lab/ibd-cluster"
	"github.com/dustin/go-humanize"
)

func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	a, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := os.Create(a.out + ".log")
	checkError(err)
	defer logFile.Close()
	ibdcluster.SetLogBackends(logFile)

	start := time.Now()
	ibdcluster.Log.Infof("ibdcluster starting, gt=%s map=%s out=%s", a.gt, a.mapFile, a.out)
	logParams(a)

	stats := &ibdcluster.Stats{}
	checkError(run(a, stats))

	elapsed := time.Since(start)
	ibdcluster.Log.Infof("samples: %s", humanize.Comma(stats.Samples()))
	ibdcluster.Log.Infof("haplotypes: %s", humanize.Comma(stats.Haplotypes()))
	ibdcluster.Log.Infof("input records: %s", humanize.Comma(stats.InputRecords()))
	ibdcluster.Log.Infof("records after MAF filter: %s", humanize.Comma(stats.AfterMAF()))
	ibdcluster.Log.Infof("output positions: %s", humanize.Comma(stats.OutputPositions()))
	ibdcluster.Log.Infof("mean clusters per position: %.3f", stats.MeanClustersPerPosition())
	ibdcluster.Log.Infof("IBD allele discordance rate: %.6f", stats.AlleleDiscordanceRate())
	ibdcluster.Log.Infof("done in %s", elapsed)
}

func logParams(a *args) {
	p := a.params
	ibdcluster.Log.Infof("min-maf=%g min-ibs-cm=%g min-ibd-cm=%g pbwt=%d trim=%g discord=%g out-cm=%g nthreads=%d",
		p.MinMAF, p.MinIBSCM, p.MinIBDCM, p.PBWT, p.Trim, p.Discord, p.OutCM, p.NThreads)
	ibdcluster.Log.Infof("ne=%g quantile=%g gc-bases=%d gc-discord=%g seed=%d",
		p.Ne, p.Quantile, p.GCBases, p.GCDiscord, p.Seed)
}

func run(a *args, stats *ibdcluster.Stats) error {
	gm, err := ibdcluster.LoadGeneticMap(a.mapFile, a.chrom)
	if err != nil {
		return err
	}

	excludeSamples, err := loadIDSet(a.excludeSamples)
	if err != nil {
		return err
	}
	excludeMarkers, err := loadPosSet(a.excludeMarkers)
	if err != nil {
		return err
	}

	src, err := ibdcluster.OpenVCF(a.gt)
	if err != nil {
		return err
	}
	defer src.Close()

	chrom, err := ibdcluster.LoadChromosome(src, ibdcluster.LoadChromosomeOptions{
		Chrom:          a.chrom,
		StartPos:       a.startPos,
		EndPos:         a.endPos,
		MinMAF:         a.params.MinMAF,
		ExcludeSamples: excludeSamples,
		ExcludeMarkers: excludeMarkers,
		GeneticMap:     gm,
	})
	if err != nil {
		return err
	}
	stats.SetSamples(chrom.NSamples())
	stats.SetHaplotypes(chrom.NHaps)
	stats.AddInputRecords(chrom.NRawRecords)
	stats.AddAfterMAF(int64(chrom.NMarkers()))

	analysis, err := ibdcluster.RunChromosome(chrom, gm, a.params)
	if err != nil {
		return err
	}
	analysis.Cluster(chrom, a.params.OutWindowSize, stats)

	return ibdcluster.WriteIbdClust(a.out+".ibdclust.gz", a.chrom, chrom.SampleIDs, analysis.Rows, a.params.OutWindowSize, a.params.NThreads)
}
