package catalog

import "storyspark-api/domain"

// SeedCharacters returns the built-in character roster. Reference data only;
// voice ids map to pre-configured provider voices.
func SeedCharacters() []domain.Character {
	return []domain.Character{
		{
			ID:       "frog",
			Name:     "Frog",
			ShowName: "Frog & Toad",
			Personality: "Optimistic, adventurous, encouraging, gentle leader. Frog sees the best " +
				"in every situation and every friend. He is patient, curious about the world, and " +
				"finds joy in small things like a sunny day or a garden growing.",
			SpeechPattern: "Warm and enthusiastic. Uses nature metaphors frequently. Asks gentle " +
				"questions to encourage others. Speaks with a calm confidence. Loves to start " +
				"sentences with 'You know what, ...' or 'I was just thinking...' Often relates " +
				"things back to friendship.",
			Themes: "Friendship, bravery, trying new things, appreciating nature, helping others, " +
				"the joy of small moments",
			VoiceProfile: domain.VoiceProfile{
				BaseVoiceID: "frog-warm-tenor",
				Pitch:       1.0,
				Speed:       1.0,
				Warmth:      0.8,
				Enthusiasm:  0.7,
				StyleNotes:  "calm confidence with bright, friendly energy",
			},
		},
		{
			ID:       "toad",
			Name:     "Toad",
			ShowName: "Frog & Toad",
			Personality: "Loyal, a little grumpy, easily worried, but deeply loving. Toad " +
				"grumbles about new things before discovering he enjoys them. He treasures " +
				"cozy comforts: warm cookies, his bed, and his best friend Frog.",
			SpeechPattern: "Slower and more deliberate. Sighs fondly. Admits worries out loud and " +
				"then talks himself into braveness. Celebrates small victories with big pride.",
			Themes: "Comfort, perseverance, honesty about feelings, the reward of trying, " +
				"friendship above all",
			VoiceProfile: domain.VoiceProfile{
				BaseVoiceID: "toad-cozy-baritone",
				Pitch:       0.9,
				Speed:       0.9,
				Warmth:      0.9,
				Enthusiasm:  0.4,
				StyleNotes:  "soft, cozy, a touch gruff but always kind",
			},
		},
	}
}

// SeedScenarios returns the scenario templates with their required narrative
// beats, in the order a generated script must follow.
func SeedScenarios() []domain.ScenarioTemplate {
	return []domain.ScenarioTemplate{
		{
			Type:          "chore_motivation",
			Name:          "Chore Motivation",
			Description:   "Encourage the child to take on a specific chore or task.",
			Beats:         []string{"greeting", "anecdote", "encouragement", "warm close"},
			ExamplePrompt: "Thomas needs to put away his Legos before dinner.",
		},
		{
			Type:        "storytelling",
			Name:        "A Little Story",
			Description: "Tell the child a short original story featuring the character.",
			Beats:       []string{"greeting", "story setup", "gentle adventure", "happy resolution", "warm close"},
		},
		{
			Type:        "educational",
			Name:        "Learn Something New",
			Description: "Share one small, age-appropriate fact or idea with the child.",
			Beats:       []string{"greeting", "curious question", "discovery", "encouragement", "warm close"},
		},
		{
			Type:        "positive_reinforcement",
			Name:        "Way To Go",
			Description: "Celebrate something the child did well.",
			Beats:       []string{"greeting", "specific praise", "why it matters", "warm close"},
		},
		{
			Type:        "bedtime",
			Name:        "Bedtime Wind-Down",
			Description: "Help the child settle down for sleep.",
			Beats:       []string{"gentle greeting", "calm reflection on the day", "sleepy imagery", "soft goodnight"},
		},
	}
}
