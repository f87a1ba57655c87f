package llm

import "fmt"

const systemPrompt = "You are a plant expert providing detailed information about various plants."

const analysisPrompt = `Write a comprehensive and detailed report on the plant %s. Include the following information:
1. **General Information**:
   - Common name
   - Scientific name
   - Origin and habitat
   - Description and physical characteristics

2. **Care Instructions**:
   - Light requirements
   - Watering needs
   - Soil preferences
   - Temperature and humidity requirements
   - Fertilization tips
   - Pruning and maintenance

3. **Toxicity**:
   - Is the plant toxic to humans or pets?
   - Symptoms of poisoning
   - What you should do

4. **Propagation**:
   - Methods of propagation
   - Best time to propagate

5. **Common Issues**:
   - Pests and diseases
   - Common problems and solutions

6. **Interesting Facts**:
   - Any unique features or historical significance

Make sure the report is detailed and easy to understand for both novice and experienced plant enthusiasts.`

// IdentificationPrompt asks the model for a bare name answer, suitable for
// use as a lookup key.
const IdentificationPrompt = "Reply with only the plant name and its scientific name. Example: Chinese Rose (Rosa chinensis)"

// AnalysisMessages builds the message list for a plant report.
func AnalysisMessages(plantName string) []Message {
	return []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(analysisPrompt, plantName)},
	}
}

// IdentifyMessages builds the vision message list for identifying a plant
// from a base64-encoded JPEG.
func IdentifyMessages(imageB64 string) []Message {
	return []Message{
		{
			Role: "user",
			Content: []ContentPart{
				{Type: "text", Text: IdentificationPrompt},
				{Type: "image_url", ImageURL: &ImageURL{URL: "data:image/jpeg;base64," + imageB64}},
			},
		},
	}
}
