// Command simulate runs one scripted call offline: the keyword classifier
// stands in for the LLM and dispatches are only logged. Useful for checking
// flow changes without a telephony stack.
package main

import (
	"context"
	"log"
	"time"

	"github.com/room4-2/LoanConverse/callflow"
	"github.com/room4-2/LoanConverse/config"
	"github.com/room4-2/LoanConverse/dispatch"
	"github.com/room4-2/LoanConverse/intent"
	"github.com/room4-2/LoanConverse/loan"

	"github.com/google/uuid"
)

var customerTurns = []string{
	"Bəli, mənəm",
	"Anar, 12 iyul 2001",
	"Bəli, maraqlıdır",
	"Faiz dərəcəsi nə qədərdir?",
	"Xeyr, başqa sualım yoxdur",
	"Ticarət, pərakəndə satış",
	"Bəli, düzdür",
	"Bəli, davam edək",
	"Bakı, Nəsimi rayonu",
	"0501234567 və 0771234567",
	"Bəli, düzdür",
	"Bəli, təsdiqləyirəm",
	"Xeyr",
	"Xeyr, sağ olun",
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	campaign := cfg.Campaign

	birthDate, err := time.Parse("2006-01-02", campaign.BirthDate)
	if err != nil {
		log.Fatalf("Invalid campaign birth date: %v", err)
	}
	offer, err := loan.NewOffer(campaign.ApprovedAmount, campaign.MaxTermMonths)
	if err != nil {
		log.Fatalf("Invalid campaign offer: %v", err)
	}

	identity := callflow.NewIdentity(campaign.CustomerName, campaign.FatherName, birthDate)
	flow := callflow.NewSession(identity, offer, campaign.MaxTermMonths, campaign.AccountSuffix)
	controller := callflow.NewController(uuid.New().String(), flow, dispatch.NewLogGateway())
	classifier := intent.NewKeywordClassifier()

	ctx := context.Background()

	log.Printf("🤖 %s", controller.Open().Utterance)
	for _, turn := range customerTurns {
		log.Printf("👤 %s", turn)

		result, err := classifier.Classify(ctx, turn, controller.Expectation())
		if err != nil {
			log.Fatalf("Classification failed: %v", err)
		}
		log.Printf("   [%s -> %s]", controller.Session().State, result.Intent)

		reply := controller.Advance(ctx, result)
		log.Printf("🤖 %s", reply.Utterance)
		if reply.End {
			log.Printf("📞 Call ended: %s after %d turns", reply.Reason, controller.Session().Turns)
			return
		}
	}
	log.Printf("⚠️ Script exhausted in state %s", controller.Session().State)
}
