// rtcm3mon renders a live terminal view of an RTCM 3 stream read from a
// file or stdin: per-message-type counters, the latest observation epoch,
// and the station metadata seen so far. Press q or Esc to quit.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/fxb-rtcm/rtcm3dec/rtcm3"
)

// monitor is the state shared between the reader goroutine and the draw
// loop.
type monitor struct {
	mu sync.Mutex

	typeCount map[int]int
	nBytes    int
	nEpochs   int
	nEph      int
	lastEpoch []rtcm3.SatObs
	antenna   string
	receiver  string
	arp       string
	station   int
	diags     []string
}

func (m *monitor) consume(d *rtcm3.Decoder, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nBytes += n
	for _, id := range d.TypeList {
		m.typeCount[id]++
	}
	d.TypeList = d.TypeList[:0]
	for _, epoch := range d.ObsList {
		m.nEpochs++
		m.lastEpoch = epoch
	}
	d.ObsList = d.ObsList[:0]
	if n := len(d.AntennaDescriptors); n > 0 {
		m.antenna = d.AntennaDescriptors[n-1].Descriptor
	}
	if n := len(d.ReceiverDescriptors); n > 0 {
		m.receiver = d.ReceiverDescriptors[n-1].ReceiverType
	}
	if d.ARPValid {
		m.arp = fmt.Sprintf("%.4f %.4f %.4f", d.ARP.Pos[0], d.ARP.Pos[1], d.ARP.Pos[2])
	}
	m.station = d.StationID()
	m.diags = d.Diagnostics()
}

func (m *monitor) draw(scr tcell.Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()

	scr.Clear()
	head := tcell.StyleDefault.Bold(true)
	plain := tcell.StyleDefault
	dim := tcell.StyleDefault.Dim(true)

	row := 0
	puts(scr, 0, row, head, fmt.Sprintf("rtcm3mon  station=%d  bytes=%d  epochs=%d  ephemerides=%d",
		m.station, m.nBytes, m.nEpochs, m.nEph))
	row += 2

	puts(scr, 0, row, head, "message counts")
	row++
	ids := make([]int, 0, len(m.typeCount))
	for id := range m.typeCount {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		puts(scr, 2, row, plain, fmt.Sprintf("%4d %6d", id, m.typeCount[id]))
		row++
	}
	row++

	puts(scr, 0, row, head, fmt.Sprintf("last epoch (%d satellites)", len(m.lastEpoch)))
	row++
	for i, obs := range m.lastEpoch {
		if i >= 16 {
			puts(scr, 2, row, dim, "...")
			row++
			break
		}
		line := fmt.Sprintf("%c%02d", obs.PRN.System, obs.PRN.Number)
		for _, f := range obs.Freqs {
			if f.PseudorangeValid {
				line += fmt.Sprintf("  %s %14.3f", f.Code, f.Pseudorange)
			}
		}
		puts(scr, 2, row, plain, line)
		row++
	}
	row++

	if m.antenna != "" {
		puts(scr, 0, row, plain, "antenna:  "+m.antenna)
		row++
	}
	if m.receiver != "" {
		puts(scr, 0, row, plain, "receiver: "+m.receiver)
		row++
	}
	if m.arp != "" {
		puts(scr, 0, row, plain, "arp:      "+m.arp)
		row++
	}
	if n := len(m.diags); n > 0 {
		puts(scr, 0, row, dim, "diag: "+m.diags[n-1])
	}
	scr.Show()
}

func puts(scr tcell.Screen, x, y int, style tcell.Style, s string) {
	for i, c := range s {
		scr.SetContent(x+i, y, c, nil, style)
	}
}

func main() {
	file := flag.String("f", "", "input file (default stdin)")
	opt := flag.String("opt", "", "decoder options, e.g. \"-STA=1234\"")
	flag.Parse()

	in := os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatalf("open: %v", err)
		}
		defer f.Close()
		in = f
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := scr.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer scr.Fini()

	m := &monitor{typeCount: make(map[int]int)}
	d := rtcm3.NewDecoder()
	d.Opt = *opt
	d.OnGPSEphemeris = func(rtcm3.GPSEphemeris) { m.mu.Lock(); m.nEph++; m.mu.Unlock() }
	d.OnGLOEphemeris = func(rtcm3.GLOEphemeris) { m.mu.Lock(); m.nEph++; m.mu.Unlock() }
	d.OnGalileoEphemeris = func(rtcm3.GalileoEphemeris) { m.mu.Lock(); m.nEph++; m.mu.Unlock() }
	d.OnSBASEphemeris = func(rtcm3.SBASEphemeris) { m.mu.Lock(); m.nEph++; m.mu.Unlock() }
	d.OnBDSEphemeris = func(rtcm3.BDSEphemeris) { m.mu.Lock(); m.nEph++; m.mu.Unlock() }

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				d.Decode(buf[:n])
				m.consume(d, n)
			}
			if err == io.EOF {
				// keep the final screen up until the user quits
				return
			}
			if err != nil {
				return
			}
		}
	}()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- scr.PollEvent()
		}
	}()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case <-tick.C:
			m.draw(scr)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				scr.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			}
		}
	}
}
