package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/samber/lo"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain/models"
	"github.com/nigamshah29/TokenCrowdsale/internal/usecase"
)

// ArtifactsRenderer renders loaded contract artifacts
type ArtifactsRenderer struct {
	out     io.Writer
	showABI bool
}

// NewArtifactsRenderer creates a new artifacts renderer; showABI prints the raw ABI JSON
func NewArtifactsRenderer(out io.Writer, showABI bool) *ArtifactsRenderer {
	return &ArtifactsRenderer{out: out, showABI: showABI}
}

// Render displays both artifacts
func (r *ArtifactsRenderer) Render(result *usecase.LoadContractsResult) error {
	if result == nil {
		return fmt.Errorf("no result to render")
	}

	for _, artifact := range []*models.Artifact{result.Token, result.Crowdsale} {
		if artifact == nil {
			continue
		}
		r.renderArtifact(artifact)
	}
	return nil
}

func (r *ArtifactsRenderer) renderArtifact(artifact *models.Artifact) {
	fmt.Fprintln(r.out, FormatSuccess("Loaded "+artifact.ContractName))
	labelStyle.Fprint(r.out, "  Source: ")
	faintStyle.Fprintln(r.out, artifact.Source)
	labelStyle.Fprint(r.out, "  Constructor: ")
	fmt.Fprintf(r.out, "(%s)\n", ConstructorSignature(artifact.ConstructorInputs()))
	labelStyle.Fprint(r.out, "  ABI: ")
	fmt.Fprintf(r.out, "%d methods, %d events\n", len(artifact.ABI.Methods), len(artifact.ABI.Events))
	if r.showABI {
		fmt.Fprintln(r.out, string(artifact.RawABI))
	}
}

// ConstructorSignature formats inputs as "address token, uint256 startTime"
func ConstructorSignature(inputs abi.Arguments) string {
	return strings.Join(lo.Map(inputs, func(in abi.Argument, _ int) string {
		if in.Name == "" {
			return in.Type.String()
		}
		return in.Type.String() + " " + in.Name
	}), ", ")
}
