package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/nbted/internal/app"
	"github.com/jmoiron/nbted/nbt"
	"github.com/jmoiron/nbted/snbt"
	flag "github.com/spf13/pflag"
)

// version is set at build time via -ldflags; defaults to dev.
var version = "dev"

func main() {
	var (
		asNBT, asSNBT, asJSON bool
		space                 int
		outPath               string
		endian                string
		compression           string
		rootName              string
		noRootName            bool
		bedrockLevel          int32
		noStrict              bool
		defName               string
		serve                 bool
		listen                string
		showVersion           bool
		verbose               int
	)

	flag.BoolVar(&asNBT, "nbt", false, "output binary NBT")
	flag.BoolVar(&asSNBT, "snbt", false, "output SNBT text (default)")
	flag.BoolVar(&asJSON, "json", false, "output JSON")
	flag.IntVar(&space, "space", 0, "indentation width for text output")
	flag.StringVarP(&outPath, "out", "o", "", "write output to a file instead of stdout")
	flag.StringVar(&endian, "endian", "", "wire dialect: big, little, or little-varint (default: detect)")
	flag.StringVar(&compression, "compression", "", "compression: none, gzip, zlib, or deflate (default: detect)")
	flag.StringVar(&rootName, "root-name", "", "expect/write a named root with this name")
	flag.BoolVar(&noRootName, "no-root-name", false, "treat the root as anonymous")
	flag.Int32Var(&bedrockLevel, "bedrock-level", 0, "prefix output with a Bedrock level header of this version")
	flag.BoolVar(&noStrict, "no-strict", false, "ignore trailing bytes after the root tag")
	flag.StringVar(&defName, "definition", "", "print a type definition sketch with this interface name")
	flag.BoolVar(&serve, "serve", false, "serve a web inspector over a directory of NBT files")
	flag.StringVar(&listen, "addr", "0.0.0.0:8222", "listen address for --serve (host:port)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.CountVarP(&verbose, "verbose", "v", "increase verbosity; repeat for more detail")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: nbted [options] <file.nbt | file.snbt | ->\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	if serve {
		abs, err := filepath.Abs(input)
		if err != nil {
			log.Fatalf("resolve dir: %v", err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			log.Fatalf("invalid directory: %v", err)
		}
		if !info.IsDir() {
			log.Fatalf("not a directory: %s", abs)
		}
		a, err := app.New(abs, verbose)
		if err != nil {
			log.Fatalf("init: %v", err)
		}
		log.Printf("listening on http://%s (%d files)", listen, a.Len())
		if err := httpListenAndServe(listen, a.Router()); err != nil {
			log.Fatalf("server: %v", err)
		}
		return
	}

	data, err := readInput(input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	file, err := decode(input, data, decodeFlags{
		endian:       nbt.Endian(endian),
		compression:  nbt.Compression(compression),
		rootName:     rootName,
		rootNameSet:  flag.CommandLine.Changed("root-name"),
		noRootName:   noRootName,
		bedrockLevel: bedrockLevel,
		bedrockSet:   flag.CommandLine.Changed("bedrock-level"),
		lenient:      noStrict,
	})
	if err != nil {
		log.Fatalf("decode: %v", err)
	}

	if defName != "" {
		if err := writeOutput(outPath, []byte(nbt.Definition(file.Root, defName))); err != nil {
			log.Fatalf("write: %v", err)
		}
		return
	}

	var out []byte
	switch {
	case asNBT:
		wo := &nbt.WriteOptions{}
		if flag.CommandLine.Changed("endian") {
			wo.Endian = nbt.Endian(endian)
		}
		if flag.CommandLine.Changed("compression") {
			wo.Compression = nbt.Compression(compression)
		}
		if flag.CommandLine.Changed("root-name") {
			wo.RootName = rootName
		}
		if noRootName {
			wo.RootName = false
		}
		if flag.CommandLine.Changed("bedrock-level") {
			wo.BedrockLevel = bedrockLevel
		}
		out, err = nbt.Write(file, wo)
	case asJSON:
		out, err = nbt.JSON(file.Root, strings.Repeat(" ", space))
		out = append(out, '\n')
	default:
		var s string
		s, err = snbt.StringIndent(file.Root, strings.Repeat(" ", space))
		out = []byte(s + "\n")
	}
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if err := writeOutput(outPath, out); err != nil {
		log.Fatalf("write: %v", err)
	}
}

type decodeFlags struct {
	endian       nbt.Endian
	compression  nbt.Compression
	rootName     string
	rootNameSet  bool
	noRootName   bool
	bedrockLevel int32
	bedrockSet   bool
	lenient      bool
}

// decode turns the input into an enveloped tree. A .snbt path is
// parsed as text and given a default envelope; everything else goes
// through the binary reader.
func decode(path string, data []byte, df decodeFlags) (*nbt.File, error) {
	if strings.HasSuffix(path, ".snbt") {
		v, err := snbt.Parse(string(data))
		if err != nil {
			return nil, err
		}
		return &nbt.File{Root: v, Named: true, Endian: nbt.EndianBig, Compression: nbt.CompressionNone}, nil
	}
	opts := &nbt.ReadOptions{
		Endian:      df.endian,
		Compression: df.compression,
		Lenient:     df.lenient,
	}
	if df.noRootName {
		opts.RootName = false
	} else if df.rootNameSet {
		opts.RootName = df.rootName
	}
	if df.bedrockSet {
		opts.BedrockLevel = df.bedrockLevel
	}
	return nbt.Read(data, opts)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// httpListenAndServe exists to facilitate testing/mocking if desired.
var httpListenAndServe = func(addr string, h http.Handler) error {
	return http.ListenAndServe(addr, h)
}
