/*
Package puzzles holds the puzzle templates used to build VMPs and the asset
types: the meta puzzle, the boilerplate type, the strict fungibility
validators and the singleton puzzles.

The templates are loaded once and never modified, a Registry is safe to share.
*/
package puzzles

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/contract-patterns/vmp-go-base/program"
	"github.com/contract-patterns/vmp-go-base/types"
	"github.com/contract-patterns/vmp-go-base/vmp"
)

// Template files, hex encoded serialized programs.
const (
	MetaPuzzleFile = "validating_meta_puzzle.clsp.hex"

	BasicLauncherFile     = "boilerplate/launcher.clsp.hex"
	BasicPreValidatorFile = "boilerplate/pre_validator.clsp.hex"
	BasicValidatorFile    = "boilerplate/validator.clsp.hex"
	BasicRemoverFile      = "boilerplate/remover.clsp.hex"

	FungibilityPreValidatorFile = "strict_fungibility/pre_validator.clsp.hex"
	CATValidatorFile            = "strict_fungibility/cat_validator.clsp.hex"
	NFTValidatorFile            = "strict_fungibility/nft_validator.clsp.hex"
	SingletonLauncherFile       = "strict_fungibility/singleton_launcher.clsp.hex"
	P2SingletonFile             = "strict_fungibility/p2_singleton.clsp.hex"
)

var ErrMissingTemplate = errors.New("missing puzzle template")

type (
	// Templates are the uncurried puzzles the registry is built from.
	Templates struct {
		MetaPuzzle *program.Program

		BasicLauncher     *program.Program
		BasicPreValidator *program.Program
		BasicValidator    *program.Program
		BasicRemover      *program.Program

		FungibilityPreValidator *program.Program // curried with the hash of the validator it pairs with
		CATValidator            *program.Program
		NFTValidator            *program.Program
		SingletonLauncher       *program.Program // curried with the id of the coin launching the singleton
		P2Singleton             *program.Program
	}

	/*
	   Registry gives access to the templates and the puzzles derived from
	   them. The derived puzzles are computed once when the registry is
	   created.
	*/
	Registry struct {
		tmpl Templates
		meta *vmp.Template

		basicLauncherHash types.Bytes32
		basicRemoverHash  types.Bytes32
		catPreValidator   *program.Program
		nftPreValidator   *program.Program
	}
)

// New validates the templates and builds registry of them.
func New(tmpl Templates) (*Registry, error) {
	for _, f := range tmpl.fields() {
		if *f.prog == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingTemplate, f.file)
		}
	}

	r := &Registry{
		tmpl:              tmpl,
		meta:              vmp.NewTemplate(tmpl.MetaPuzzle),
		basicLauncherHash: tmpl.BasicLauncher.TreeHash(),
		basicRemoverHash:  tmpl.BasicRemover.TreeHash(),
		catPreValidator:   tmpl.FungibilityPreValidator.Curry(program.FromBytes32(tmpl.CATValidator.TreeHash())),
		nftPreValidator:   tmpl.FungibilityPreValidator.Curry(program.FromBytes32(tmpl.NFTValidator.TreeHash())),
	}
	log.Debugf("puzzle registry: meta puzzle %s, CAT pre-validator %s, NFT pre-validator %s",
		r.meta.ModHash, r.catPreValidator.TreeHash(), r.nftPreValidator.TreeHash())
	return r, nil
}

/*
Load reads the template files (see the *File constants) from fsys. Each file
contains hex encoded serialized program, optionally "0x" prefixed.
*/
func Load(fsys fs.FS) (*Registry, error) {
	var tmpl Templates
	for _, f := range tmpl.fields() {
		p, err := loadProgram(fsys, f.file)
		if err != nil {
			return nil, err
		}
		*f.prog = p
	}
	return New(tmpl)
}

// LoadDir loads the templates from the directory.
func LoadDir(dir string) (*Registry, error) {
	log.Infof("loading puzzle templates from %s", dir)
	return Load(os.DirFS(dir))
}

func loadProgram(fsys fs.FS, name string) (*program.Program, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", name, err)
	}
	s := strings.TrimPrefix(strings.TrimSpace(string(data)), "0x")
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: decoding hex: %w", name, err)
	}
	p, err := program.Deserialize(buf)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", name, err)
	}
	return p, nil
}

type templateField struct {
	file string
	prog **program.Program
}

func (t *Templates) fields() []templateField {
	return []templateField{
		{MetaPuzzleFile, &t.MetaPuzzle},
		{BasicLauncherFile, &t.BasicLauncher},
		{BasicPreValidatorFile, &t.BasicPreValidator},
		{BasicValidatorFile, &t.BasicValidator},
		{BasicRemoverFile, &t.BasicRemover},
		{FungibilityPreValidatorFile, &t.FungibilityPreValidator},
		{CATValidatorFile, &t.CATValidator},
		{NFTValidatorFile, &t.NFTValidator},
		{SingletonLauncherFile, &t.SingletonLauncher},
		{P2SingletonFile, &t.P2Singleton},
	}
}

// Meta returns the meta puzzle all VMPs are built from.
func (r *Registry) Meta() *vmp.Template { return r.meta }

func (r *Registry) BasicLauncher() *program.Program     { return r.tmpl.BasicLauncher }
func (r *Registry) BasicLauncherHash() types.Bytes32    { return r.basicLauncherHash }
func (r *Registry) BasicPreValidator() *program.Program { return r.tmpl.BasicPreValidator }
func (r *Registry) BasicValidator() *program.Program    { return r.tmpl.BasicValidator }
func (r *Registry) BasicRemover() *program.Program      { return r.tmpl.BasicRemover }
func (r *Registry) BasicRemoverHash() types.Bytes32     { return r.basicRemoverHash }

func (r *Registry) CATValidator() *program.Program { return r.tmpl.CATValidator }
func (r *Registry) NFTValidator() *program.Program { return r.tmpl.NFTValidator }

// CATPreValidator is the fungibility pre-validator curried with the CAT validator hash.
func (r *Registry) CATPreValidator() *program.Program { return r.catPreValidator }

// NFTPreValidator is the fungibility pre-validator curried with the NFT validator hash.
func (r *Registry) NFTPreValidator() *program.Program { return r.nftPreValidator }

// SingletonLauncher returns the launcher of the singleton originating from the coin.
func (r *Registry) SingletonLauncher(coinID types.CoinID) *program.Program {
	return r.tmpl.SingletonLauncher.Curry(program.FromBytes32(coinID))
}

// P2Singleton returns the uncurried pay to singleton puzzle.
func (r *Registry) P2Singleton() *program.Program { return r.tmpl.P2Singleton }
