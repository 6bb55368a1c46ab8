package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Output
	outputFile      string
	jsonOutput      bool
	copyToClipboard bool
	pdfOutputFile   string

	// Ingestion
	noIgnore        bool
	interactiveMode bool

	// Token Counting
	disableTokens  bool
	tokenizerType  string
	tokenizerModel string
	tokenizerFile  string

	// Processing
	numThreads int

	// Server
	listenAddr string

	cfgFile string
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "codearchive [ARCHIVES...]",
	Short: "codearchive turns source archives into a single LLM-ready document.",
	Long: `codearchive extracts ZIP archives, local directories, and Git repositories
into a directory tree plus one formatted document concatenating the readable
source files, suitable for pasting into a large-language-model prompt.`,
	Version:      version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listenAddr != "" {
			return runServer(listenAddr)
		}

		inputs := args
		if interactiveMode {
			selected, err := runInteractiveFinder()
			if err != nil {
				return fmt.Errorf("interactive mode error: %w", err)
			}
			if selected == nil {
				return nil // user aborted selection
			}
			inputs = selected
		}
		if len(inputs) == 0 {
			inputs = []string{"."} // default to the current directory
		}

		var tokenizer Tokenizer
		if !disableTokens {
			var err error
			tokenizer, err = getTokenizer()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing tokenizer: %v\n", err)
				fmt.Fprintln(os.Stderr, "Token counting disabled due to error.")
				disableTokens = true
			} else {
				defer tokenizer.Close()
			}
		}

		var tempDirsToClean []string
		defer func() {
			for _, dir := range tempDirsToClean {
				_ = os.RemoveAll(dir)
			}
		}()

		var outputs []*ProcessedOutput
		var outputBuilder strings.Builder
		failed := 0

		for _, input := range inputs {
			currentInput := input
			if isGitURL(currentInput) {
				tempDir, cloneErr := cloneGitRepo(currentInput)
				if cloneErr != nil {
					fmt.Fprintf(os.Stderr, "Error cloning git repo %s: %v\n", currentInput, cloneErr)
					failed++
					continue
				}
				tempDirsToClean = append(tempDirsToClean, tempDir)
				currentInput = tempDir
			}

			output, outcomes, err := processInput(currentInput)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", input, err)
				failed++
				continue
			}

			if !disableTokens && tokenizer != nil {
				output.Stats.TotalTokens = countEmbeddedTokens(tokenizer, outcomes, numThreads)
			}

			if pdfOutputFile != "" {
				if err := generatePDF(output, outcomes, pdfOutputFile); err != nil {
					fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
				}
			}

			outputs = append(outputs, output)
			outputBuilder.WriteString(output.FormattedContent)
			outputBuilder.WriteString("\n")
			fmt.Fprintf(os.Stderr, "%s: %d files, %d folders, %d lines, %s, %s\n",
				input, output.Stats.TotalFiles, output.Stats.TotalFolders,
				output.Stats.LinesOfCode, output.Stats.FileSize, output.Stats.ProcessingTime)
		}

		if len(outputs) == 0 {
			return fmt.Errorf("all %d input(s) failed to process", failed)
		}

		finalOutput := outputBuilder.String()
		if jsonOutput {
			var payload any = outputs
			if len(outputs) == 1 {
				payload = outputs[0]
			}
			encoded, err := json.MarshalIndent(payload, "", "  ")
			if err != nil {
				return fmt.Errorf("cannot encode JSON output: %w", err)
			}
			finalOutput = string(encoded) + "\n"
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(finalOutput), 0644); err != nil {
				return fmt.Errorf("error writing to file %s: %w", outputFile, err)
			}
			fmt.Printf("Output saved to %s\n", outputFile)
		} else if copyToClipboard {
			if err := clipboard.WriteAll(finalOutput); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing to clipboard: %v\n", err)
				fmt.Println(finalOutput)
			} else {
				fmt.Println("Output copied to clipboard.")
			}
		} else if pdfOutputFile == "" {
			fmt.Print(finalOutput)
		}

		if failed > 0 {
			return fmt.Errorf("%d input(s) failed to process", failed)
		}
		return nil
	},
}

// processInput routes one local input (ZIP archive or directory) through the
// pipeline.
func processInput(path string) (*ProcessedOutput, []FileOutcome, error) {
	var entries []ArchiveEntry
	var size int64
	var err error

	info, statErr := os.Stat(path)
	switch {
	case statErr == nil && info.IsDir():
		entries, size, err = entriesFromDir(path, !noIgnore)
	case isArchivePath(path):
		entries, size, err = entriesFromZipFile(path)
	case statErr != nil:
		return nil, nil, fmt.Errorf("error accessing path %s: %w", path, statErr)
	default:
		return nil, nil, fmt.Errorf("%s is neither a ZIP archive nor a directory", path)
	}
	if err != nil {
		return nil, nil, err
	}

	return processArchive(entries, size)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Output
	rootCmd.Flags().StringVarP(&outputFile, "file", "f", "", "Save output to specified file")
	viper.BindPFlag("file", rootCmd.Flags().Lookup("file"))
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full result (tree, document, stats) as JSON")
	viper.BindPFlag("json", rootCmd.Flags().Lookup("json"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy output to clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save output as PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))

	// Ingestion
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore files when reading directories")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Opens interactive archive picker")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	// Token Counting
	rootCmd.Flags().BoolVar(&disableTokens, "no-tokens", false, "Disable token counting")
	viper.BindPFlag("no_tokens", rootCmd.Flags().Lookup("no-tokens"))
	rootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().StringVar(&tokenizerModel, "model", "", "Model name for tokenizer (e.g., gpt-4o, gpt2)")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().StringVar(&tokenizerFile, "tokenizer-file", "", "Path to local tokenizer file")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))

	// Processing
	rootCmd.Flags().IntVarP(&numThreads, "threads", "t", 0, "Number of threads for token counting (0 for auto)")
	viper.BindPFlag("threads", rootCmd.Flags().Lookup("threads"))

	// Server
	rootCmd.Flags().StringVar(&listenAddr, "listen", "", "Run as an HTTP upload server on the given address (e.g. :8080)")
	viper.BindPFlag("listen", rootCmd.Flags().Lookup("listen"))

	viper.SetDefault("tokenizer", "tiktoken")
	viper.SetDefault("no_tokens", false)
	viper.SetDefault("no_ignore", false)
	viper.SetDefault("threads", 0)
	viper.SetDefault("interactive", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "codearchive"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CODEARCHIVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
