package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"NewsRisk/internal/converter"
	"NewsRisk/internal/domain"
	"NewsRisk/internal/ports"
)

// Converter names.
const (
	ClaimsConverter    = "claims"
	ContractsConverter = "contracts"
)

const contractQuestion = "Q: What is the JSON representation of this reinsurance contract?"

// DocumentConverter sends each document in a directory through one completion
// and stores the reply as indented JSON. The first completion or parse failure
// aborts the batch; earlier outputs stay on disk.
type DocumentConverter struct {
	name        string
	completer   ports.Completer
	store       ports.ArtifactStore
	sourceDir   string
	outputDir   string
	instruction string
	read        func(name string) (string, error)
	prompt      func(text string) string
	doneMessage string
	logger      *slog.Logger
}

var _ converter.Converter = (*DocumentConverter)(nil)

// NewClaimAssessor assesses plain-text claim notes.
func NewClaimAssessor(completer ports.Completer, store ports.ArtifactStore, claimsDir, assessmentDir, instruction string, logger *slog.Logger) *DocumentConverter {
	return &DocumentConverter{
		name:        ClaimsConverter,
		completer:   completer,
		store:       store,
		sourceDir:   claimsDir,
		outputDir:   assessmentDir,
		instruction: orDefault(instruction, defaultClaimsPrompt),
		read: func(name string) (string, error) {
			return store.ReadText(claimsDir, name)
		},
		prompt: func(text string) string {
			return "Claim: " + text
		},
		doneMessage: "claim assessed",
		logger:      orDiscard(logger),
	}
}

// NewContractConverter converts PDF reinsurance contracts.
func NewContractConverter(completer ports.Completer, store ports.ArtifactStore, extractor ports.TextExtractor, contractsDir, jsonDir, instruction string, logger *slog.Logger) *DocumentConverter {
	return &DocumentConverter{
		name:        ContractsConverter,
		completer:   completer,
		store:       store,
		sourceDir:   contractsDir,
		outputDir:   jsonDir,
		instruction: orDefault(instruction, defaultContractsPrompt),
		read: func(name string) (string, error) {
			return extractor.ExtractText(store.Path(contractsDir, name))
		},
		prompt: func(text string) string {
			return "Contract: " + text + "\n\n" + contractQuestion
		},
		doneMessage: "contract converted to JSON",
		logger:      orDiscard(logger),
	}
}

// Name identifies the converter inside the registry.
func (c *DocumentConverter) Name() string {
	return c.name
}

// Convert processes every document in lexical order and returns how many were written.
func (c *DocumentConverter) Convert(ctx context.Context) (int, error) {
	for _, dir := range []string{c.sourceDir, c.outputDir} {
		if err := c.store.EnsureDir(dir); err != nil {
			return 0, err
		}
	}

	names, err := c.store.List(c.sourceDir)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, name := range names {
		if strings.HasPrefix(name, ".") {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))

		text, err := c.read(name)
		if err != nil {
			return written, fmt.Errorf("%s: read %s: %w", c.name, name, err)
		}

		reply, err := c.completer.Complete(ctx, []domain.Message{
			domain.UserMessage(c.instruction),
			domain.UserMessage(c.prompt(text)),
		})
		if err != nil {
			return written, fmt.Errorf("%s: complete %s: %w", c.name, name, err)
		}

		if !json.Valid([]byte(reply)) {
			malformed := domain.NewCollaboratorError("completion", domain.KindMalformed, errors.New("reply is not valid JSON"))
			return written, fmt.Errorf("%s: parse reply for %s: %w", c.name, name, malformed)
		}
		if _, err := c.store.WriteJSONIndent(c.outputDir, stem+".json", []byte(reply)); err != nil {
			return written, fmt.Errorf("%s: write %s: %w", c.name, stem, err)
		}

		written++
		c.logger.Info(c.doneMessage, "document", stem)
	}

	return written, nil
}
