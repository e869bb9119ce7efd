// bedrock-cli is an offline tool for BIP39 mnemonics, seed and master-key
// derivation, and Bitcoin block inspection.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/term"

	"github.com/stonebridge-tech/bedrock/config"
	"github.com/stonebridge-tech/bedrock/internal/blockstore"
	"github.com/stonebridge-tech/bedrock/internal/log"
	"github.com/stonebridge-tech/bedrock/internal/storage"
	"github.com/stonebridge-tech/bedrock/pkg/bip39"
	"github.com/stonebridge-tech/bedrock/pkg/block"
	"github.com/stonebridge-tech/bedrock/pkg/wordlist"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	dataDir := ""
	network := ""
	language := ""
	logLevel := ""
	logJSON := false
	logJSONSet := false

	// Scan for --datadir, --network, --language, --log-level, and
	// --log-json before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--datadir" && len(args) > 1:
			dataDir = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			dataDir = args[0][len("--datadir="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		case args[0] == "--language" && len(args) > 1:
			language = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--language="):
			language = args[0][len("--language="):]
			args = args[1:]
		case args[0] == "--log-level" && len(args) > 1:
			logLevel = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--log-level="):
			logLevel = args[0][len("--log-level="):]
			args = args[1:]
		case args[0] == "--log-json":
			logJSON = true
			logJSONSet = true
			args = args[1:]
		case strings.HasPrefix(args[0], "--log-json="):
			logJSON = args[0][len("--log-json="):] == "true"
			logJSONSet = true
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	// Defaults, then the config file, then flags.
	cfg := config.Default("")
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	fileValues, err := config.LoadFile(cfg.ConfigFile())
	if err != nil {
		fatal("load config file: %v", err)
	}
	if err := config.ApplyFileConfig(cfg, fileValues); err != nil {
		fatal("apply config file: %v", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if network != "" {
		cfg.Network = config.NetworkType(network)
	}
	if language != "" {
		cfg.Language = wordlist.Language(language)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logJSONSet {
		cfg.Log.JSON = logJSON
	}
	if err := config.Validate(cfg); err != nil {
		fatal("invalid config: %v", err)
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "mnemonic":
		cmdMnemonic(cfg, cmdArgs)
	case "seed":
		cmdSeed(cfg, cmdArgs)
	case "masterkey":
		cmdMasterKey(cfg, cmdArgs)
	case "header":
		cmdHeader(cmdArgs)
	case "block":
		cmdBlock(cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: bedrock-cli [global flags] <command> [flags]

Global flags:
  --datadir <path>    Data directory (default: ~/.bedrock)
  --network <net>     mainnet (default), testnet, regtest, simnet, or signet
  --language <lang>   Mnemonic wordlist language (default: english)
  --log-level <lvl>   Log level: debug, info, warn, error (default: info)
  --log-json          Output logs as JSON

Commands:
  mnemonic new [--bits <n>] [--language <lang>] [--show-entropy]
                                  Generate a new mnemonic sentence
  mnemonic check [--language <lang>] <words...>
                                  Verify a mnemonic and print its entropy
  mnemonic entropy [--language <lang>] <hex>
                                  Build the mnemonic for entropy bytes

  seed [--unchecked] [--passphrase-prompt] <words...>
                                  Derive the 64-byte BIP39 seed
  masterkey [--network <net>] [--passphrase-prompt] <words...>
                                  Derive the BIP32 master extended private key

  header decode [--no-validate] <hex>
                                  Decode an 80-byte block header to JSON
  block decode [--no-validate] <file|hex>
                                  Decode a raw block to JSON
  block import [--no-validate] <file...>
                                  Validate and store raw block files
  block show <hash>               Show a stored block as JSON
  block headers                   List stored block headers
`)
}

// ── mnemonic ────────────────────────────────────────────────────────────

func cmdMnemonic(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatal("Usage: bedrock-cli mnemonic <new|check|entropy> [flags]")
	}

	switch args[0] {
	case "new":
		cmdMnemonicNew(cfg, args[1:])
	case "check":
		cmdMnemonicCheck(cfg, args[1:])
	case "entropy":
		cmdMnemonicEntropy(cfg, args[1:])
	default:
		fatal("Unknown mnemonic command: %s\nUsage: bedrock-cli mnemonic <new|check|entropy> [flags]", args[0])
	}
}

func cmdMnemonicNew(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("mnemonic new", flag.ExitOnError)
	bits := fs.Int("bits", 256, "Entropy size in bits (128, 160, 192, 224, or 256)")
	langStr := fs.String("language", "", "Wordlist language (overrides global)")
	showEntropy := fs.Bool("show-entropy", false, "Also print the entropy hex")
	fs.Parse(args)

	list := listFor(cfg, *langStr)

	entropy, err := bip39.GenerateEntropy(*bits)
	if err != nil {
		fatal("generate entropy: %v", err)
	}
	mnemonic, err := bip39.FromEntropy(entropy, list)
	if err != nil {
		fatal("encode mnemonic: %v", err)
	}

	fmt.Println(mnemonic)
	if *showEntropy {
		fmt.Printf("entropy: %x\n", entropy.Bytes())
	}
}

func cmdMnemonicCheck(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("mnemonic check", flag.ExitOnError)
	langStr := fs.String("language", "", "Wordlist language (overrides global)")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fatal("Usage: bedrock-cli mnemonic check [--language <lang>] <words...>")
	}

	list := listFor(cfg, *langStr)
	mnemonic := strings.Join(fs.Args(), " ")

	entropy, err := bip39.ToEntropy(mnemonic, list)
	if err != nil {
		fatal("invalid mnemonic: %v", err)
	}
	fmt.Printf("%x\n", entropy.Bytes())
}

func cmdMnemonicEntropy(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("mnemonic entropy", flag.ExitOnError)
	langStr := fs.String("language", "", "Wordlist language (overrides global)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatal("Usage: bedrock-cli mnemonic entropy [--language <lang>] <hex>")
	}

	list := listFor(cfg, *langStr)

	raw, err := hex.DecodeString(strings.TrimSpace(fs.Arg(0)))
	if err != nil {
		fatal("invalid entropy hex: %v", err)
	}
	entropy, err := bip39.EntropyFromBytes(raw)
	if err != nil {
		fatal("invalid entropy: %v", err)
	}
	mnemonic, err := bip39.FromEntropy(entropy, list)
	if err != nil {
		fatal("encode mnemonic: %v", err)
	}
	fmt.Println(mnemonic)
}

// ── seed ────────────────────────────────────────────────────────────────

func cmdSeed(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	unchecked := fs.Bool("unchecked", false, "Skip mnemonic checksum verification")
	passPrompt := fs.Bool("passphrase-prompt", false, "Prompt for an optional passphrase")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fatal("Usage: bedrock-cli seed [--unchecked] [--passphrase-prompt] <words...>")
	}

	mnemonic := strings.Join(fs.Args(), " ")
	if !*unchecked {
		checkMnemonic(cfg, mnemonic)
	}

	passphrase := ""
	if *passPrompt {
		passphrase = promptPassphrase()
	}

	seed := bip39.UncheckedSeed(mnemonic, passphrase)
	fmt.Printf("%x\n", seed)
}

// ── masterkey ───────────────────────────────────────────────────────────

func cmdMasterKey(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("masterkey", flag.ExitOnError)
	netStr := fs.String("network", "", "Network for version bytes (overrides global)")
	passPrompt := fs.Bool("passphrase-prompt", false, "Prompt for an optional passphrase")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fatal("Usage: bedrock-cli masterkey [--network <net>] [--passphrase-prompt] <words...>")
	}

	network := cfg.Network
	if *netStr != "" {
		network = config.NetworkType(*netStr)
	}
	params, err := config.Params(network)
	if err != nil {
		fatal("%v", err)
	}

	mnemonic := strings.Join(fs.Args(), " ")
	checkMnemonic(cfg, mnemonic)

	passphrase := ""
	if *passPrompt {
		passphrase = promptPassphrase()
	}

	seed := bip39.UncheckedSeed(mnemonic, passphrase)
	xprv, err := bip39.MasterKeyFromSeed(seed, params)
	for i := range seed {
		seed[i] = 0
	}
	if err != nil {
		fatal("derive master key: %v", err)
	}
	fmt.Println(xprv)
}

// checkMnemonic verifies the mnemonic checksum against the configured
// wordlist language.
func checkMnemonic(cfg *config.Config, mnemonic string) {
	list := listFor(cfg, "")
	if _, err := bip39.ToEntropy(mnemonic, list); err != nil {
		fatal("invalid mnemonic: %v", err)
	}
}

// ── header ──────────────────────────────────────────────────────────────

func cmdHeader(args []string) {
	if len(args) < 1 {
		fatal("Usage: bedrock-cli header decode [--no-validate] <hex>")
	}

	switch args[0] {
	case "decode":
		cmdHeaderDecode(args[1:])
	default:
		fatal("Unknown header command: %s\nUsage: bedrock-cli header decode [--no-validate] <hex>", args[0])
	}
}

func cmdHeaderDecode(args []string) {
	fs := flag.NewFlagSet("header decode", flag.ExitOnError)
	noValidate := fs.Bool("no-validate", false, "Skip consensus validation")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatal("Usage: bedrock-cli header decode [--no-validate] <hex>")
	}

	raw, err := hex.DecodeString(strings.TrimSpace(fs.Arg(0)))
	if err != nil {
		fatal("invalid header hex: %v", err)
	}
	hdr, err := block.ParseHeader(raw, !*noValidate)
	if err != nil {
		fatal("decode header: %v", err)
	}

	printJSON(hdr)
}

// ── block ───────────────────────────────────────────────────────────────

func cmdBlock(cfg *config.Config, args []string) {
	if len(args) < 1 {
		fatal("Usage: bedrock-cli block <decode|import|show|headers> [flags]")
	}

	switch args[0] {
	case "decode":
		cmdBlockDecode(args[1:])
	case "import":
		cmdBlockImport(cfg, args[1:])
	case "show":
		cmdBlockShow(cfg, args[1:])
	case "headers":
		cmdBlockHeaders(cfg, args[1:])
	default:
		fatal("Unknown block command: %s\nUsage: bedrock-cli block <decode|import|show|headers> [flags]", args[0])
	}
}

func cmdBlockDecode(args []string) {
	fs := flag.NewFlagSet("block decode", flag.ExitOnError)
	noValidate := fs.Bool("no-validate", false, "Skip consensus validation")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fatal("Usage: bedrock-cli block decode [--no-validate] <file|hex>")
	}

	arg := fs.Arg(0)
	var raw []byte
	if _, err := os.Stat(arg); err == nil {
		raw, err = readBlockFile(arg)
		if err != nil {
			fatal("%s: %v", arg, err)
		}
	} else {
		raw, err = hex.DecodeString(strings.TrimSpace(arg))
		if err != nil {
			fatal("argument is neither a readable file nor block hex: %v", err)
		}
	}

	blk, err := block.ParseBlock(raw, !*noValidate)
	if err != nil {
		fatal("decode block: %v", err)
	}

	printJSON(blk)
}

func cmdBlockImport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("block import", flag.ExitOnError)
	noValidate := fs.Bool("no-validate", false, "Skip consensus validation")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fatal("Usage: bedrock-cli block import [--no-validate] <file...>")
	}

	defer log.Benchmark("block import")()

	store, db := openStore(cfg)
	defer db.Close()

	for _, path := range fs.Args() {
		raw, err := readBlockFile(path)
		if err != nil {
			fatal("%s: %v", path, err)
		}
		blk, err := block.ParseBlock(raw, false)
		if err != nil {
			fatal("%s: %v", path, err)
		}
		hash, err := store.PutBlock(blk, !*noValidate)
		if err != nil {
			fatal("%s: %v", path, err)
		}
		fmt.Printf("Imported %s (%d txs)\n", hash, len(blk.Transactions))
	}
}

func cmdBlockShow(cfg *config.Config, args []string) {
	if len(args) != 1 {
		fatal("Usage: bedrock-cli block show <hash>")
	}

	hash, err := chainhash.NewHashFromStr(args[0])
	if err != nil {
		fatal("invalid block hash: %v", err)
	}

	store, db := openStore(cfg)
	defer db.Close()

	blk, err := store.Block(*hash)
	if err != nil {
		fatal("%v", err)
	}

	printJSON(blk)
}

func cmdBlockHeaders(cfg *config.Config, args []string) {
	if len(args) != 0 {
		fatal("Usage: bedrock-cli block headers")
	}

	store, db := openStore(cfg)
	defer db.Close()

	var count int
	err := store.ForEachHeader(func(hash chainhash.Hash, hdr *block.Header) error {
		ts := hdr.Timestamp().Format("2006-01-02 15:04:05 UTC")
		fmt.Printf("%s  %s  bits=%08x  nonce=%d\n", hash, ts, hdr.Bits, hdr.Nonce)
		count++
		return nil
	})
	if err != nil {
		fatal("list headers: %v", err)
	}
	fmt.Printf("Headers: %d\n", count)
}

// ── Store helper ────────────────────────────────────────────────────────

// openStore opens the shared block database namespaced by network. The
// caller must close the returned DB.
func openStore(cfg *config.Config) (*blockstore.Store, storage.DB) {
	if err := config.EnsureDataDirs(cfg); err != nil {
		fatal("ensure data dirs: %v", err)
	}
	db, err := storage.NewBadger(cfg.BlocksDir())
	if err != nil {
		fatal("open block store: %v", err)
	}
	ns := storage.NewPrefixDB(db, []byte(string(cfg.Network)+"/"))
	return blockstore.NewStore(ns), db
}

// ── Input helpers ───────────────────────────────────────────────────────

// readBlockFile reads a raw block file, accepting binary or hex text.
func readBlockFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if isHex(text) {
		return hex.DecodeString(text)
	}
	return data, nil
}

func isHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// listFor resolves the wordlist from a per-command override or the
// global config.
func listFor(cfg *config.Config, override string) *wordlist.List {
	lang := cfg.Language
	if override != "" {
		lang = wordlist.Language(override)
	}
	list, err := wordlist.ForLanguage(lang)
	if err != nil {
		fatal("%v", err)
	}
	return list
}

// ── Output helper ───────────────────────────────────────────────────────

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("marshal result: %v", err)
	}
	fmt.Println(string(data))
}

// ── Passphrase helper ───────────────────────────────────────────────────

func promptPassphrase() string {
	pass, err := readPassword("Enter passphrase: ")
	if err != nil {
		fatal("read passphrase: %v", err)
	}
	confirm, err := readPassword("Confirm passphrase: ")
	if err != nil {
		fatal("read passphrase: %v", err)
	}
	if string(pass) != string(confirm) {
		fatal("passphrases do not match")
	}
	return string(pass)
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
