package usecase

import (
	"strings"

	"NewsRisk/internal/config"
)

const defaultSummaryPrompt = `I am a risk analyst for a large insurance company. I am tasked with
identifying emerging cyber risks that could impact our business.
I have collected snippets of a series of news articles.
I'd like you to identify a few notable emerging cyber risks, themes, and
trends and list them. Don't name any companies or individuals.

Following this, produce a short summary identifying the emerging risks common
in all the articles. The summary should be of sufficient length and detail
that a Board member can understand the risks and opportunities and make an
informed decision on how to proceed.
This summary will be included in a report to the Board of Directors.`

const defaultActionPointsPrompt = `List three action points that the Board should consider in order of priority.
List not more than three points.
Separate each action point with a line break.
Each action point should be a single complete sentence.

For example, if the summary states that "the Board should consider cyber
security providers", then the action point would be "Provide a high-level
project plan to discover and evaluate cyber security providers, including
some information on how to evaluate them."`

const defaultFulfillmentPrompt = `Produce a project plan for the following action point.`

const defaultClaimsPrompt = `You are a system that extracts information from claims reporting interactions
and inserts this information into JSON files. Use the following schema strictly
to convert the information provided into JSON format. The user will
provide the interaction and you will use it to:
1. Extract the claim number (claim_id)
2. Extract the policy number (policy_id)
3. Rate the likelihood of the claim being fraudulent with 1 being low and 3
being high (fraud_likelihood) with reasoning (reason_for_fraud_rating)
4. Determine the emotional state of the claimant (claimant_emotion) with reasoning
(reason_for_emotion)
5. Summarise the claim based on the information provided (claim_summary)
6. Determine if further assessment is required (further_assessment_required)
with reasoning (reason_for_further_assessment)

Schema:

{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "claim_id": {"type": "string", "description": "The claim number"},
        "policy_id": {"type": "string", "description": "The policy number"},
        "fraud_likelihood": {"type": "integer", "minimum": 1, "maximum": 3, "description": "The likelihood of the claim being fraudulent with 1 being low and 3 being high"},
        "reason_for_fraud_rating": {"type": "string", "description": "The reasoning behind the fraud rating"},
        "claimant_emotion": {"type": "string", "description": "The emotional state of the claimant"},
        "reason_for_emotion": {"type": "string", "description": "The reasoning behind determining the claimant's emotional state"},
        "claim_summary": {"type": "string", "description": "Summary of the claim based on the information provided"},
        "further_assessment_required": {"type": "boolean", "description": "Determine if further assessment is required"},
        "reason_for_further_assessment": {"type": "string", "description": "The reasoning behind the need for further assessment"}
    },
    "required": [
        "claim_id", "policy_id", "fraud_likelihood", "reason_for_fraud_rating",
        "claimant_emotion", "reason_for_emotion", "claim_summary",
        "further_assessment_required", "reason_for_further_assessment"
    ]
}`

const defaultContractsPrompt = `You are a system that extracts information from reinsurance contracts
and inserts this information into JSON files. Use the following schema strictly
to convert the contract information provided into JSON format. The user will
provide the text followed by the question: "What is the JSON representation of
this reinsurance contract?"

Schema:

{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "treatyType": {"type": "string", "description": "Type of reinsurance treaty"},
        "insured": {"type": "string", "description": "Name of the insurance company being insured"},
        "reinsurer": {"type": "string", "description": "Name of the reinsurance company providing coverage"},
        "period": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "description": "Start date of the reinsurance period"},
                "end": {"type": "string", "description": "End date of the reinsurance period"}
            },
            "required": ["start", "end"],
            "description": "Period of reinsurance coverage"
        },
        "lossLayers": {
            "type": "array",
            "items": {
                "type": "object",
                "properties": {
                    "layer": {"type": "integer", "description": "Layer number"},
                    "excessOf": {"type": "integer", "description": "Excess amount triggering reinsurance coverage"},
                    "limit": {"type": "integer", "description": "Maximum coverage limit for the layer"},
                    "reinsuredPercent": {"type": "integer", "description": "Percentage of loss reinsured for the layer"}
                },
                "required": ["layer", "excessOf", "limit", "reinsuredPercent"]
            },
            "description": "Information about the loss layers of the reinsurance contract"
        },
        "interest": {"type": "string", "description": "Coverage interest and lines of business"},
        "sumInsured": {"type": "integer", "description": "Total sum insured under the reinsurance contract"},
        "commission": {
            "type": "object",
            "properties": {
                "percent": {"type": "integer", "description": "Commission percentage"},
                "maxLossRatio": {"type": "integer", "description": "Maximum loss ratio for commission calculation"}
            },
            "required": ["percent", "maxLossRatio"],
            "description": "Commission details"
        },
        "exclusions": {"type": "array", "items": {"type": "string"}, "description": "List of exclusions or risks not covered by the reinsurance"},
        "claimsNotification": {"type": "integer", "description": "Timeframe for claims notification in days"},
        "arbitrationClause": {"type": "string", "description": "Clause describing arbitration process"},
        "currency": {"type": "string", "description": "Currency used for the reinsurance contract"}
    },
    "required": [
        "treatyType", "insured", "reinsurer", "period", "lossLayers", "interest",
        "sumInsured", "commission", "exclusions", "claimsNotification",
        "arbitrationClause", "currency"
    ]
}`

// Prompts holds the resolved instruction texts.
type Prompts struct {
	Summary      string
	ActionPoints string
	Fulfillment  string
	Claims       string
	Contracts    string
}

// DefaultPrompts returns the built-in instructions.
func DefaultPrompts() Prompts {
	return Prompts{
		Summary:      defaultSummaryPrompt,
		ActionPoints: defaultActionPointsPrompt,
		Fulfillment:  defaultFulfillmentPrompt,
		Claims:       defaultClaimsPrompt,
		Contracts:    defaultContractsPrompt,
	}
}

// PromptsFromConfig overlays configured prompts on the defaults.
func PromptsFromConfig(cfg config.PromptConfig) Prompts {
	p := DefaultPrompts()
	p.Summary = orDefault(cfg.Summary, p.Summary)
	p.ActionPoints = orDefault(cfg.ActionPoints, p.ActionPoints)
	p.Fulfillment = orDefault(cfg.Fulfillment, p.Fulfillment)
	p.Claims = orDefault(cfg.Claims, p.Claims)
	p.Contracts = orDefault(cfg.Contracts, p.Contracts)
	return p
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
