// rtcm3dump reads a raw RTCM 3 stream from a file or stdin, decodes it,
// and prints every observation epoch and ephemeris in a readable line
// format; station metadata is not printed. Each run is tagged with a UUID so the
// stderr diagnostics of concurrent dumps can be told apart when collected
// into one log.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/fxb-rtcm/rtcm3dec/rtcm3"
)

func main() {
	file := flag.String("f", "", "input file (default stdin)")
	opt := flag.String("opt", "", "decoder options, e.g. \"-STA=1234\"")
	trace := flag.Int("trace", 0, "trace level for decoder diagnostics")
	quiet := flag.Bool("q", false, "suppress per-record output, print the summary only")
	flag.Parse()

	run := uuid.New()
	logger := log.New(os.Stderr, fmt.Sprintf("rtcm3dump run=%s ", run), log.Ltime)

	in := os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			logger.Fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	d := rtcm3.NewDecoder()
	d.Opt = *opt
	if *trace > 0 {
		d.Logger = rtcm3.StdLogger{Level: *trace, Logger: logger}
	}

	var nEph int
	printEph := func(kind string, prn rtcm3.PRN) {
		nEph++
		if !*quiet {
			fmt.Printf("EPH  %s %c%02d\n", kind, prn.System, prn.Number)
		}
	}
	d.OnGPSEphemeris = func(e rtcm3.GPSEphemeris) { printEph("lnav", e.PRN) }
	d.OnGLOEphemeris = func(e rtcm3.GLOEphemeris) { printEph("glo ", e.PRN) }
	d.OnGalileoEphemeris = func(e rtcm3.GalileoEphemeris) { printEph(e.NAVType, e.PRN) }
	d.OnSBASEphemeris = func(e rtcm3.SBASEphemeris) { printEph("sbas", e.PRN) }
	d.OnBDSEphemeris = func(e rtcm3.BDSEphemeris) { printEph("bds ", e.PRN) }

	buf := make([]byte, 4096)
	var nBytes, nEpochs, nObs int
	for {
		n, err := in.Read(buf)
		if n > 0 {
			nBytes += n
			d.Decode(buf[:n])
			for _, epoch := range d.ObsList {
				nEpochs++
				nObs += len(epoch)
				if *quiet {
					continue
				}
				fmt.Printf("OBS  epoch of %d satellites\n", len(epoch))
				for _, obs := range epoch {
					fmt.Printf("  %c%02d msg=%d", obs.PRN.System, obs.PRN.Number, obs.MessageType)
					for _, f := range obs.Freqs {
						if f.PseudorangeValid {
							fmt.Printf("  %s C=%.3f", f.Code, f.Pseudorange)
						}
						if f.CarrierPhaseValid {
							fmt.Printf(" L=%.3f", f.CarrierPhase)
						}
						if f.SNRValid {
							fmt.Printf(" S=%.2f", f.SNR)
						}
					}
					fmt.Println()
				}
			}
			d.ObsList = d.ObsList[:0]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Fatalf("read: %v", err)
		}
	}

	for _, s := range d.Diagnostics() {
		logger.Printf("diag: %s", s)
	}
	logger.Printf("done: %d bytes, %d messages, %d epochs (%d observations), %d ephemerides",
		nBytes, len(d.TypeList), nEpochs, nObs, nEph)
}
