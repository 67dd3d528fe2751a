package assistant

type cannedCommand struct {
	phrase   string
	response VoiceResponse
}

// cannedCommands are matched in order against the lowercased command text.
var cannedCommands = []cannedCommand{
	{
		phrase: "where should we add trees",
		response: VoiceResponse{
			Response: "Based on our knowledge graph analysis, adding trees along Main Street and around the central plaza would have the greatest cooling impact. The graph shows strong connections between these areas and peak temperature nodes. Vector similarity with successful projects in Barcelona suggests these placements could reduce temperatures by up to 5°C.",
			Action:   ActionHighlight,
			Parameters: map[string]any{
				"areas": [][2]int{{25, 50}, {60, 30}, {40, 70}},
				"type":  "trees",
			},
		},
	},
	{
		phrase: "show hottest areas",
		response: VoiceResponse{
			Response: "The knowledge graph identifies the central parking lot and commercial zone to the northeast as critical heat nodes with multiple amplifying connections. These areas show surface temperatures reaching 45°C during peak hours according to our vector database of thermal imagery.",
			Action:   ActionHighlight,
			Parameters: map[string]any{
				"areas": [][2]int{{45, 35}, {75, 25}},
				"type":  "heat",
			},
		},
	},
	{
		phrase: "compare cool roofs and trees",
		response: VoiceResponse{
			Response: "Our GraphRAG analysis shows that trees provide more cooling per dollar invested than cool roofs in this specific urban context. The knowledge graph reveals trees have stronger cooling relationships with pedestrian areas, while vector similarity with 24 case studies indicates trees offer an average of 3°C reduction versus 1.5°C for cool roofs. However, cool roofs can be implemented on existing buildings without taking up ground space.",
			Action:   ActionCompare,
			Parameters: map[string]any{
				"interventions": []string{"trees", "roofs"},
			},
		},
	},
}

var simulatedVoice = []VoiceResponse{
	{
		Response: "Based on my analysis of the urban heat patterns, the most effective intervention would be to create a network of shade trees along Main Street. This could reduce temperatures by approximately 2.8°C during peak hours. The knowledge graph shows a strong cooling relationship between mature trees and pedestrian corridors.",
		Action:   ActionHighlight,
		Parameters: map[string]any{
			"areas": [][2]int{{30, 40}, {50, 45}},
			"type":  "trees",
		},
	},
	{
		Response: "The commercial district would benefit most from a combination of cool roofs and vertical gardens. Our vector similarity analysis found comparable implementations in Madrid that achieved a 3.2°C reduction in surface temperatures. The graph data suggests this area is a critical heat node affecting surrounding neighborhoods.",
		Action:   ActionHighlight,
		Parameters: map[string]any{
			"areas": [][2]int{{60, 30}},
			"type":  "roofs",
		},
	},
	{
		Response: "For optimal cooling with your budget constraints, I'd recommend focusing on the central plaza area. The knowledge graph indicates this is a key connection point between multiple heat corridors. Similar urban spaces in Melbourne implemented permeable paving and shade structures to achieve a 4°C temperature reduction.",
		Action:   ActionHighlight,
		Parameters: map[string]any{
			"areas": [][2]int{{45, 50}},
			"type":  "shade",
		},
	},
}

var unavailableVoice = VoiceResponse{
	Response:   "I'm sorry, I couldn't process that request. Could you try asking in a different way?",
	Action:     ActionNone,
	Parameters: map[string]any{},
}

// simulatedAnswers serve knowledge queries when no LLM is configured.
var simulatedAnswers = []string{
	"Based on our knowledge graph analysis of urban heat patterns, strategic tree placement along southern exposures provides the most effective cooling per investment dollar. Vector similarity with 24 case studies from Mediterranean cities shows an average temperature reduction of 3.2°C when trees are placed to maximize afternoon shade. The graph relationships indicate strong cooling connections between mature trees and pedestrian areas.",
	"The knowledge graph shows that commercial districts with high building density create the most significant heat islands in your urban context. Similar urban areas in our vector database have successfully implemented a combination of cool roofs (reducing temperatures by 1.5°C) and green corridors (additional 2.1°C reduction). The graph structure reveals that interventions in this district would propagate cooling effects to surrounding residential areas.",
	"Analysis of your city's thermal patterns through our knowledge graph reveals that interconnected interventions are more effective than isolated ones. Successful case studies with 87% vector similarity to your urban morphology demonstrate that creating 'cool pathways' connecting parks, water features, and tree-lined streets can reduce temperatures by up to 4.5°C while improving pedestrian comfort by 60%.",
}

// fallbackAnswers serve knowledge queries when the LLM call fails.
var fallbackAnswers = []string{
	"Based on our knowledge graph analysis, strategic tree placement along southern exposures provides the most effective cooling per dollar invested. Vector similarity with Mediterranean cities shows this can reduce temperatures by 3.2°C on average.",
	"The knowledge graph shows strong connections between cool roofs and reduced energy consumption. Similar implementations in urban areas comparable to yours have achieved 15-30% reductions in cooling costs while decreasing ambient temperatures by 1.5-2°C.",
	"Our analysis indicates that combining different intervention types creates synergistic cooling effects. The vector similarity search finds that cities with connected networks of trees, green spaces, and water features achieve 40% greater cooling than isolated interventions.",
}

const voiceSystemPrompt = `You are Shade Guide, an AI assistant for the UrbanShade urban heat mitigation planning tool
powered by GraphRAG technology, which combines knowledge graphs with vector search.

Your role is to help urban planners identify optimal cooling interventions for cities experiencing urban heat island effects.

Respond in JSON format with the following structure:
{
  "response": "Your detailed response text here",
  "action": "One of: highlight, compare, recommend, or none",
  "parameters": {
    // Action-specific parameters:
    // For highlight: areas (array of coordinates), type (string)
    // For compare: interventions (array of strings)
    // For recommend: interventionType (string), locations (array)
  }
}

Your responses should mention both knowledge graph relationships and vector similarity where relevant.

Keep responses focused on urban heat mitigation strategies including:
- Tree placement and green spaces
- Cool roofs and reflective surfaces
- Water features
- Shade structures
- Permeable pavements

Base your recommendations on established urban cooling research.`

const querySystemPrompt = "You are an urban planning expert specializing in heat island mitigation."
