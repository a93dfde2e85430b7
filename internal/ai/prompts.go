package ai

import (
	"fmt"
	"strings"

	"smmagent/internal/models"
)

const SystemPrompt = "You are an experienced social media manager and copywriter. Produce high quality content for social networks."

// PostSeparator is the delimiter the text model is asked to put between
// generated posts.
const PostSeparator = "\n---\n"

func PostsPrompt(p *models.Product, count int, tone string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write %d social media posts based on the following product data:\n\n", count)
	fmt.Fprintf(&sb, "Product: %s\n", p.Name)
	fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	fmt.Fprintf(&sb, "Target audience: %s\n", p.TargetAudience)
	fmt.Fprintf(&sb, "Category: %s\n", p.Category)
	fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(p.Keywords, ", "))
	fmt.Fprintf(&sb, "Tone: %s\n\n", tone)
	sb.WriteString("Requirements for EACH post:\n")
	sb.WriteString("- Clear structure: a short introduction, two or three paragraphs of substance, practical takeaways, a conclusion\n")
	sb.WriteString("- Use emoji very sparingly (0-2 per post)\n")
	sb.WriteString("- Do not add a call to action or ask to subscribe; that is appended separately\n")
	sb.WriteString("- Do not invent links or citations\n\n")
	sb.WriteString("Response format:\n")
	sb.WriteString("- Return ONLY the post texts\n")
	sb.WriteString("- Separate posts with a line containing exactly: ---\n")
	return sb.String()
}

func HashtagsPrompt(p *models.Product, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write %d popular and relevant hashtags for the product:\n\n", count)
	fmt.Fprintf(&sb, "Product: %s\n", p.Name)
	fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	fmt.Fprintf(&sb, "Category: %s\n\n", p.Category)
	sb.WriteString("Requirements:\n")
	sb.WriteString("- Hashtags must be popular on social networks\n")
	sb.WriteString("- Include generic hashtags for the category and specific ones for the product\n")
	sb.WriteString("- No leading # character\n\n")
	sb.WriteString("Return only the hashtags, separated by commas.")
	return sb.String()
}

func ImagePrompt(p *models.Product) string {
	var sb strings.Builder
	sb.WriteString("Write a detailed prompt for generating a product image:\n\n")
	fmt.Fprintf(&sb, "Product: %s\n", p.Name)
	fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	fmt.Fprintf(&sb, "Category: %s\n\n", p.Category)
	sb.WriteString("Describe the visual style, colors, composition and mood. ")
	fmt.Fprintf(&sb, "Make the image appealing for social networks and the target audience: %s\n\n", p.TargetAudience)
	sb.WriteString("Return only the image generation prompt.")
	return sb.String()
}

func VideoScriptPrompt(p *models.Product) string {
	var sb strings.Builder
	sb.WriteString("Write a short video script (15-30 seconds) for the product:\n\n")
	fmt.Fprintf(&sb, "Product: %s\n", p.Name)
	fmt.Fprintf(&sb, "Description: %s\n", p.Description)
	fmt.Fprintf(&sb, "Target audience: %s\n\n", p.TargetAudience)
	sb.WriteString("The script must be dynamic, include a call to action, name the visual elements and transitions, and stress the product benefit.\n\n")
	sb.WriteString("Return only the video script.")
	return sb.String()
}

func AnalyzePrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following social media post and rate its likely effectiveness:\n\n")
	fmt.Fprintf(&sb, "Post: %s\n\n", text)
	sb.WriteString("Rate these aspects from 1 to 10: headline appeal, readability, emotional impact, call to action, audience relevance.\n\n")
	sb.WriteString("Return the answer as JSON with the scores and recommendations.")
	return sb.String()
}
