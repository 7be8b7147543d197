package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"os"

	"flipbook-viewer/internal/logger"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
)

//go:embed all:frontend/dist
var assets embed.FS

// Command line flags
var (
	fileFlag = flag.String("file", "", "Local PDF file path to open")
	urlFlag  = flag.String("url", "", "URL of a PDF document to open")
	pageFlag = flag.Int("page", 0, "Page to open the document at")
	infoFlag = flag.Bool("info", false, "Print document information and exit (requires --file)")
)

// printHelp displays the help information for command line usage
func printHelp() {
	fmt.Println("Flipbook Viewer - page-flip PDF reader")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  flipbook-viewer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --file <PATH>   local PDF file to open")
	fmt.Println("  --url <URL>     PDF document URL to download and open")
	fmt.Println("  --page <N>      page to open the document at")
	fmt.Println("  --info          print document information and exit (with --file)")
	fmt.Println("  -h, --help      show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  flipbook-viewer                                  # start the GUI")
	fmt.Println("  flipbook-viewer --file book.pdf --page 12")
	fmt.Println("  flipbook-viewer --url https://example.com/a.pdf")
	fmt.Println("  flipbook-viewer --file book.pdf --info")
}

// startupInput returns the document reference from the flags, "" when none
func startupInput() (string, error) {
	if *fileFlag != "" && *urlFlag != "" {
		return "", fmt.Errorf("only one of --file and --url may be given")
	}
	if *fileFlag != "" {
		return *fileFlag, nil
	}
	return *urlFlag, nil
}

func main() {
	flag.Usage = printHelp
	flag.Parse()

	input, err := startupInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Println()
		printHelp()
		os.Exit(1)
	}

	// Info mode runs without the GUI
	if *infoFlag {
		if *fileFlag == "" {
			fmt.Fprintln(os.Stderr, "error: --info requires --file")
			os.Exit(1)
		}
		if err := printDocumentInfo(*fileFlag); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger.Init(logger.DefaultConfig())
	defer logger.Close()

	app := NewApp()
	app.SetWailsRuntime(true)

	startupFunc := func(ctx context.Context) {
		app.startup(ctx)

		if *pageFlag > 0 {
			if err := app.SetPageFragment(fmt.Sprintf("page=%d", *pageFlag)); err != nil {
				logger.Warn("invalid --page flag ignored", logger.Err(err))
			}
		}

		if input != "" {
			// Off the startup path so the window appears immediately.
			go func() {
				if _, err := app.OpenInput(input); err != nil {
					fmt.Fprintf(os.Stderr, "failed to open %s: %v\n", input, err)
				}
			}()
		}
	}

	err = wails.Run(&options.App{
		Title:  "Flipbook Viewer",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 24, G: 24, B: 28, A: 1},
		OnStartup:        startupFunc,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Error("wails runtime failed", err)
	}
}
