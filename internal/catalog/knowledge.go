package catalog

import (
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/abdul-rehman-0609/FYP-Navigator/internal/types"
)

// DomainInfo describes a project domain and the skills and courses every topic in it needs.
type DomainInfo struct {
	Name        string
	BaseSkills  map[string]types.Proficiency
	BaseCourses []string
	Description string
}

// TechniqueInfo describes a technique and the cost of applying it.
type TechniqueInfo struct {
	Name           string
	RequiredSkills map[string]types.Proficiency
	Difficulty     string
	MinCGPA        float64
	EstimatedHours int
	RiskFactors    []string
	Description    string
	TitlePatterns  []string
}

// ContextInfo describes an application context. ComplexityModifier scales hours and CGPA.
type ContextInfo struct {
	Name               string
	AdditionalSkills   map[string]types.Proficiency
	AdditionalCourses  []string
	ComplexityModifier float64
	Description        string
}

// KnowledgeBase is the set of building blocks topics are generated from.
type KnowledgeBase struct {
	Domains    []DomainInfo
	Techniques []TechniqueInfo
	Contexts   []ContextInfo
}

const (
	nov = types.Novice
	itm = types.Intermediate
	adv = types.Advanced
)

// DefaultKnowledgeBase returns the built-in domains, techniques and contexts.
func DefaultKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		Domains: []DomainInfo{
			{"Web Development", map[string]types.Proficiency{"html": itm, "css": itm, "javascript": itm}, []string{"Web Engineering"}, "Building web applications and services"},
			{"Mobile Development", map[string]types.Proficiency{"java": itm, "kotlin": nov}, []string{"Mobile Application Development"}, "Creating mobile applications for iOS/Android"},
			{"Data Science", map[string]types.Proficiency{"python": itm, "pandas": itm, "numpy": itm}, []string{"Data Structures", "Statistics"}, "Analyzing and extracting insights from data"},
			{"Artificial Intelligence", map[string]types.Proficiency{"python": itm, "mathematics": itm}, []string{"Artificial Intelligence", "Linear Algebra"}, "Building intelligent systems and algorithms"},
			{"IoT", map[string]types.Proficiency{"python": itm, "arduino": nov, "sensors": nov}, []string{"Embedded Systems"}, "Internet of Things and connected devices"},
			{"Cybersecurity", map[string]types.Proficiency{"networking": itm, "cryptography": itm}, []string{"Computer Networks", "Information Security"}, "Security systems and threat detection"},
			{"Game Development", map[string]types.Proficiency{"unity": itm, "c#": itm}, []string{"Computer Graphics"}, "Creating interactive games and simulations"},
			{"Cloud Computing", map[string]types.Proficiency{"aws": nov, "docker": itm, "kubernetes": nov}, []string{"Distributed Systems"}, "Cloud-based applications and services"},
		},
		Techniques: []TechniqueInfo{
			{
				"Machine Learning", map[string]types.Proficiency{"python": itm, "scikit-learn": itm, "pandas": itm},
				types.DifficultyIntermediate, 2.8, 18,
				[]string{"Data quality issues", "Model training complexity"},
				"Using ML algorithms for prediction and classification",
				[]string{"ML-Powered %s", "Intelligent %s", "%s with Predictive Analytics"},
			},
			{
				"Deep Learning", map[string]types.Proficiency{"python": adv, "pytorch": itm, "tensorflow": itm},
				types.DifficultyAdvanced, 3.2, 22,
				[]string{"High computational requirements", "Complex architecture design"},
				"Neural networks for complex pattern recognition",
				[]string{"Deep Learning-Based %s", "Neural %s", "AI-Driven %s"},
			},
			{
				"Computer Vision", map[string]types.Proficiency{"python": itm, "opencv": itm, "image-processing": itm},
				types.DifficultyIntermediate, 2.9, 20,
				[]string{"Image quality dependency", "Real-time processing challenges"},
				"Processing and analyzing visual information",
				[]string{"Vision-Based %s", "Image Recognition for %s", "Visual Intelligence in %s"},
			},
			{
				"Natural Language Processing", map[string]types.Proficiency{"python": adv, "nlp": itm, "transformers": itm},
				types.DifficultyAdvanced, 3.0, 20,
				[]string{"Language ambiguity", "Context understanding"},
				"Understanding and generating human language",
				[]string{"NLP-Enhanced %s", "Language-Aware %s", "Text Analytics for %s"},
			},
			{
				"Blockchain", map[string]types.Proficiency{"solidity": itm, "web3": itm, "cryptography": itm},
				types.DifficultyAdvanced, 3.1, 19,
				[]string{"Security vulnerabilities", "Scalability issues"},
				"Distributed ledger technology",
				[]string{"Blockchain-Secured %s", "Decentralized %s", "Distributed Ledger for %s"},
			},
			{
				"Augmented Reality", map[string]types.Proficiency{"unity": itm, "ar-core": itm, "3d-modeling": nov},
				types.DifficultyIntermediate, 2.7, 17,
				[]string{"Device compatibility", "Tracking accuracy"},
				"Overlaying digital content on real world",
				[]string{"AR-Enhanced %s", "Augmented %s", "Mixed Reality %s"},
			},
			{
				"Microservices", map[string]types.Proficiency{"docker": itm, "api-design": itm, "databases": itm},
				types.DifficultyIntermediate, 2.8, 16,
				[]string{"Service coordination complexity", "Distributed debugging"},
				"Distributed service architecture",
				[]string{"Microservices-Based %s", "Scalable %s Architecture", "Distributed %s"},
			},
			{
				"Real-time Systems", map[string]types.Proficiency{"websockets": itm, "event-driven": itm, "concurrency": itm},
				types.DifficultyAdvanced, 3.0, 18,
				[]string{"Latency sensitivity", "Concurrency issues"},
				"Systems with strict timing constraints",
				[]string{"Real-Time %s", "Live %s", "Instant %s Processing"},
			},
			{
				"Recommendation Systems", map[string]types.Proficiency{"python": itm, "collaborative-filtering": itm, "sql": itm},
				types.DifficultyIntermediate, 2.7, 15,
				[]string{"Cold start problem", "Data sparsity"},
				"Personalized content suggestions",
				[]string{"Personalized %s", "Smart Recommendation for %s", "Adaptive %s"},
			},
			{
				"Chatbot Development", map[string]types.Proficiency{"python": itm, "nlp": nov, "dialog-management": itm},
				types.DifficultyBeginner, 2.5, 14,
				[]string{"Intent recognition accuracy", "Context management"},
				"Conversational AI interfaces",
				[]string{"Conversational %s", "Chatbot for %s", "AI Assistant for %s"},
			},
		},
		Contexts: []ContextInfo{
			{"E-Commerce Platform", map[string]types.Proficiency{"payment-gateway": nov, "inventory": nov}, []string{"Database Systems"}, 1.0, "Online shopping and transaction system"},
			{"Healthcare Application", map[string]types.Proficiency{"medical-data": nov, "privacy": itm}, []string{"Ethics in Computing"}, 1.2, "Medical diagnosis and patient management"},
			{"Education System", map[string]types.Proficiency{"learning-analytics": nov, "assessment": nov}, nil, 0.9, "Learning platforms and educational tools"},
			{"Smart City", map[string]types.Proficiency{"iot": itm, "sensors": itm}, nil, 1.1, "Urban infrastructure monitoring and management"},
			{"Financial Services", map[string]types.Proficiency{"financial-modeling": nov, "security": itm}, []string{"Database Systems"}, 1.2, "Banking, trading, and financial analysis"},
			{"Social Media Platform", map[string]types.Proficiency{"user-engagement": nov, "content-moderation": nov}, nil, 1.0, "Social networking and content sharing"},
			{"Transportation System", map[string]types.Proficiency{"gps": itm, "routing": itm}, nil, 1.1, "Traffic management and route optimization"},
			{"Agriculture Monitoring", map[string]types.Proficiency{"sensors": itm, "data-analysis": itm}, nil, 0.9, "Crop monitoring and farm management"},
			{"Environmental Monitoring", map[string]types.Proficiency{"sensors": itm, "time-series": itm}, nil, 0.9, "Air quality, water quality, and climate tracking"},
			{"Entertainment Platform", map[string]types.Proficiency{"media-streaming": nov, "content-delivery": nov}, nil, 0.8, "Video/music streaming and content delivery"},
			{"Supply Chain Management", map[string]types.Proficiency{"logistics": nov, "inventory": itm}, []string{"Database Systems"}, 1.0, "Tracking goods from production to delivery"},
			{"Customer Service Automation", map[string]types.Proficiency{"chatbot": nov, "ticketing": nov}, nil, 0.8, "Automated customer support systems"},
			{"Security Surveillance", map[string]types.Proficiency{"video-processing": itm, "real-time": itm}, nil, 1.1, "Monitoring and threat detection systems"},
			{"Energy Management", map[string]types.Proficiency{"optimization": itm, "forecasting": nov}, nil, 1.0, "Power consumption monitoring and optimization"},
			{"Disaster Response", map[string]types.Proficiency{"emergency-systems": nov, "real-time": itm}, nil, 1.2, "Emergency alert and coordination systems"},
		},
	}
}

var incompatibleDomainTechnique = map[[2]string]bool{
	{"Game Development", "Blockchain"}:     true,
	{"Cybersecurity", "Augmented Reality"}: true,
	{"IoT", "Natural Language Processing"}: true,
}

var incompatibleTechniqueContext = map[string][]string{
	"Blockchain":        {"Entertainment Platform", "Education System"},
	"Augmented Reality": {"Financial Services", "Supply Chain Management"},
}

// validCombination reports whether a domain, technique and context make a sensible topic.
func validCombination(domain, technique, context string) bool {
	if incompatibleDomainTechnique[[2]string{domain, technique}] {
		return false
	}
	for _, c := range incompatibleTechniqueContext[technique] {
		if c == context {
			return false
		}
	}
	return true
}

// Generate builds every valid domain/technique/context topic in declaration order.
// IDs are sequential (GEN0001, GEN0002, ...), so the same knowledge base always
// yields the same catalog.
func (kb *KnowledgeBase) Generate() []types.Topic {
	topics := make([]types.Topic, 0, len(kb.Domains)*len(kb.Techniques)*len(kb.Contexts))
	n := 1
	for _, d := range kb.Domains {
		for _, t := range kb.Techniques {
			for _, c := range kb.Contexts {
				if !validCombination(d.Name, t.Name, c.Name) {
					continue
				}
				topics = append(topics, buildTopic(n, d, t, c))
				n++
			}
		}
	}
	return topics
}

func buildTopic(n int, d DomainInfo, t TechniqueInfo, c ContextInfo) types.Topic {
	// later sources override earlier ones, so context requirements win
	skills := make(map[string]types.Proficiency)
	for _, src := range []map[string]types.Proficiency{d.BaseSkills, t.RequiredSkills, c.AdditionalSkills} {
		for name, level := range src {
			skills[types.NormalizeName(name)] = level
		}
	}

	courses := make([]string, 0, len(d.BaseCourses)+len(c.AdditionalCourses))
	seen := make(map[string]bool)
	for _, course := range append(append([]string{}, d.BaseCourses...), c.AdditionalCourses...) {
		if !seen[course] {
			seen[course] = true
			courses = append(courses, course)
		}
	}

	risks := append(append([]string{}, t.RiskFactors...), c.Name+" domain complexity")

	return types.Topic{
		ID:                   fmt.Sprintf("GEN%04d", n),
		Title:                generateTitle(t, c.Name),
		Description:          fmt.Sprintf("%s implemented with %s in the %s domain.", c.Description, strings.ToLower(t.Description), strings.ToLower(d.Name)),
		Domain:               d.Name,
		Technique:            t.Name,
		Context:              c.Name,
		Difficulty:           t.Difficulty,
		MinCGPA:              math.Round(t.MinCGPA*c.ComplexityModifier*100) / 100,
		RequiredSkills:       skills,
		RequiredCourses:      courses,
		EstimatedWeeklyHours: int(float64(t.EstimatedHours) * c.ComplexityModifier),
		TeamSizeMin:          1,
		TeamSizeMax:          3,
		RiskFactors:          risks,
		Keywords:             []string{strings.ToLower(d.Name), strings.ToLower(t.Name), strings.ToLower(c.Name)},
	}
}

// generateTitle picks one of the technique's title patterns by a stable hash of the context.
func generateTitle(t TechniqueInfo, context string) string {
	if len(t.TitlePatterns) == 0 {
		return fmt.Sprintf("%s with %s", context, t.Name)
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(context))
	pattern := t.TitlePatterns[int(h.Sum32()%uint32(len(t.TitlePatterns)))]
	return fmt.Sprintf(pattern, context)
}

// DomainComplexity is a coarse complexity label for a domain.
func DomainComplexity(domain string) string {
	switch domain {
	case "Artificial Intelligence", "Cybersecurity", "Cloud Computing":
		return "High"
	default:
		return "Medium"
	}
}
