// Package builder assembles notifications from events and their resolved data
package builder // import "github.com/juicetools/juicebox-heartbeat/pkg/builder"

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	log "github.com/golang/glog"

	"github.com/juicetools/juicebox-heartbeat/pkg/model"
)

const (
	maxDescriptionLen = 1000
)

// NewNotificationBuilder is a convenience function to init a NotificationBuilder
func NewNotificationBuilder(projectBaseURL string, txBaseURL string, ipfsGatewayURL string,
	textConverter model.TextConverter) *NotificationBuilder {
	return &NotificationBuilder{
		projectBaseURL: projectBaseURL,
		txBaseURL:      txBaseURL,
		ipfsGatewayURL: ipfsGatewayURL,
		textConverter:  textConverter,
	}
}

// NotificationBuilder transforms a raw event plus its resolved metadata
// and identity into the notification payload. Resolution failures show up
// here as nil metadata or identity and degrade the output, they never
// suppress it.
type NotificationBuilder struct {
	projectBaseURL string
	txBaseURL      string
	ipfsGatewayURL string
	textConverter  model.TextConverter
}

// PaymentNotification builds the notification for a payment event.
// Field order is fixed: optional note, amount, beneficiary, transaction.
func (b *NotificationBuilder) PaymentNotification(event *model.PayEvent,
	metadata *model.ProjectMetadata, beneficiary *model.DisplayIdentity) *model.Notification {
	if metadata == nil {
		metadata = model.NewProjectMetadata("", "", "")
	}
	if beneficiary == nil {
		beneficiary = model.NewDisplayIdentity(event.Beneficiary(), "")
	}

	projectName := b.projectName(metadata, event.Pv(), event.ProjectID())
	fields := []model.NotificationField{}
	if event.Note() != "" {
		fields = append(fields, model.NotificationField{
			Label:  "Note",
			Value:  fmt.Sprintf("*%v*", event.Note()),
			Inline: false,
		})
	}
	fields = append(fields,
		model.NotificationField{
			Label:  "Amount",
			Value:  b.formatEth(event.Amount()),
			Inline: true,
		},
		model.NotificationField{
			Label:  "Beneficiary",
			Value:  b.accountLink(beneficiary),
			Inline: true,
		},
		model.NotificationField{
			Label:  "Transaction",
			Value:  b.transactionLink(event.TxHash().Hex()),
			Inline: true,
		},
	)

	return model.NewNotification(
		fmt.Sprintf("Payment to %v", projectName),
		b.projectURL(event.Pv(), event.ProjectID(), event.Handle()),
		fields,
		b.thumbnailURL(metadata),
	)
}

// ProjectCreateNotification builds the notification for a project
// creation event. Field order is fixed: creator, transaction, description.
func (b *NotificationBuilder) ProjectCreateNotification(event *model.ProjectCreateEvent,
	metadata *model.ProjectMetadata, creator *model.DisplayIdentity) *model.Notification {
	if metadata == nil {
		metadata = model.NewProjectMetadata("", "", "")
	}
	if creator == nil {
		creator = model.NewDisplayIdentity(event.Creator(), "")
	}

	projectName := b.projectName(metadata, event.Pv(), event.ProjectID())
	fields := []model.NotificationField{
		{
			Label:  "Creator",
			Value:  b.accountLink(creator),
			Inline: true,
		},
		{
			Label:  "Transaction",
			Value:  b.transactionLink(event.TxHash().Hex()),
			Inline: true,
		},
	}
	description := b.processDescription(metadata.Description())
	if description != "" {
		fields = append(fields, model.NotificationField{
			Label:  "Description",
			Value:  description,
			Inline: false,
		})
	}

	return model.NewNotification(
		fmt.Sprintf("New Project: %v", projectName),
		b.projectURL(event.Pv(), event.ProjectID(), event.Handle()),
		fields,
		b.thumbnailURL(metadata),
	)
}

func (b *NotificationBuilder) projectName(metadata *model.ProjectMetadata,
	pv model.ProtocolVersion, projectID int64) string {
	if metadata.Name() != "" {
		return metadata.Name()
	}
	return fmt.Sprintf("v%v project %v", pv, projectID)
}

func (b *NotificationBuilder) projectURL(pv model.ProtocolVersion, projectID int64,
	handle string) string {
	if pv == model.ProtocolV2 {
		return fmt.Sprintf("%v/v2/p/%v", b.projectBaseURL, projectID)
	}
	return fmt.Sprintf("%v/p/%v", b.projectBaseURL, handle)
}

func (b *NotificationBuilder) thumbnailURL(metadata *model.ProjectMetadata) string {
	logoAddress := metadata.LogoAddress()
	if logoAddress == "" {
		return ""
	}
	return fmt.Sprintf("%v/%v", b.ipfsGatewayURL, logoAddress)
}

func (b *NotificationBuilder) accountLink(identity *model.DisplayIdentity) string {
	return fmt.Sprintf("[%v](%v/account/%v)", identity.Name(), b.projectBaseURL,
		identity.Address().Hex())
}

func (b *NotificationBuilder) transactionLink(txHash string) string {
	return fmt.Sprintf("[Etherscan](%v/%v)", b.txBaseURL, txHash)
}

// processDescription converts markup to markdown and truncates the result
func (b *NotificationBuilder) processDescription(description string) string {
	if description == "" {
		return ""
	}
	processed, err := b.textConverter.ConvertToMarkdown(description)
	if err != nil {
		log.Errorf("Error converting description, using raw text: err: %v", err)
		processed = description
	}
	runes := []rune(processed)
	if len(runes) > maxDescriptionLen {
		processed = string(runes[:maxDescriptionLen])
	}
	return processed
}

// formatEth renders a wei amount as a decimal ETH string with trailing
// zeros trimmed, e.g. 2500000000000000000 -> "2.5 ETH"
func (b *NotificationBuilder) formatEth(amountWei *big.Int) string {
	amount := new(big.Rat).SetFrac(amountWei, big.NewInt(params.Ether))
	rendered := amount.FloatString(18)
	rendered = strings.TrimRight(rendered, "0")
	rendered = strings.TrimSuffix(rendered, ".")
	return fmt.Sprintf("%v ETH", rendered)
}
