package coach

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-fitness/internal/catalog/equipment"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/questgen"
)

// InterviewCompleteSentinel marks the end of the onboarding interview in a chat reply
const InterviewCompleteSentinel = "[[INTERVIEW_COMPLETE]]"

// userContext is the state summary sent with every gateway request
type userContext struct {
	Name              string              `json:"name,omitempty"`
	Rank              fitness.Rank        `json:"rank"`
	Level             int                 `json:"level"`
	AthleteTier       fitness.AthleteTier `json:"athleteTier,omitempty"`
	Objective         string              `json:"objective,omitempty"`
	FitnessLevel      string              `json:"fitnessLevel,omitempty"`
	AvailableTime     int                 `json:"availableTime"`
	TrainingFrequency int                 `json:"trainingFrequency"`
	Streak            int                 `json:"streak"`
	PillarLevels      map[string]int      `json:"pillarLevels"`
	SkillPool         map[string][]string `json:"skillPool,omitempty"`
	Debuffs           []string            `json:"debuffs,omitempty"`
	Equipment         []string            `json:"equipment,omitempty"`
	HasGymAccess      bool                `json:"hasGymAccess"`
	Recovery          string              `json:"recovery,omitempty"`
	RecentQuests      []string            `json:"recentQuests,omitempty"`
}

const maxRecentQuests = 15

func (o *orchestrator) summarize(snap *fitness.Snapshot) *userContext {
	user := snap.User
	if user == nil {
		return &userContext{}
	}

	uc := &userContext{
		Name:              user.Name,
		Rank:              user.Rank,
		Level:             user.Level,
		AthleteTier:       user.AthleteTier,
		Objective:         string(user.Objective),
		FitnessLevel:      string(user.FitnessLevel),
		AvailableTime:     user.AvailableTime,
		TrainingFrequency: user.TrainingFrequency,
		Streak:            user.Streak,
		PillarLevels:      make(map[string]int, len(fitness.AllPillars)),
		SkillPool:         make(map[string][]string, len(fitness.AllPillars)),
		Equipment:         equipment.Names(snap.Equipment),
		HasGymAccess:      user.HasGymAccess,
	}

	for _, p := range fitness.AllPillars {
		uc.PillarLevels[string(p)] = user.PillarLevelOf(p)
		for _, def := range o.catalog.GetUnlockedSkillPool(user, p) {
			uc.SkillPool[string(p)] = append(uc.SkillPool[string(p)], def.Name)
		}
	}
	for _, d := range user.Debuffs {
		uc.Debuffs = append(uc.Debuffs, d.Name)
	}
	if snap.Recovery != nil {
		uc.Recovery = string(snap.Recovery.Level)
	}

	start := max(len(snap.QuestHistory)-maxRecentQuests, 0)
	for _, q := range snap.QuestHistory[start:] {
		uc.RecentQuests = append(uc.RecentQuests, q.Name)
	}
	return uc
}

func questPrompt(user *fitness.UserProfile) string {
	daily := questgen.ResolveDailyQuestCount(availableTime(user))

	var b strings.Builder
	fmt.Fprintf(&b, "Create today's training quests: %d daily quests and 1 weekly quest.\n", daily)
	b.WriteString("Only use exercises listed in skillPool for their pillar, avoid anything in recentQuests ")
	b.WriteString("and anything that conflicts with the debuffs.\n")
	b.WriteString("Reply with JSON only, shaped as ")
	b.WriteString(`{"daily":[{"name","description","executionGuide","pillar","sets","reps","xpReward","difficulty","statBoost":{"stat","amount"}}],"weekly":[{"name","description","pillar","sessions","xpReward"}]}`)
	b.WriteString(".\nDaily xpReward is 18-40, weekly xpReward is 110-220, difficulty is easy, medium or hard.")
	return b.String()
}

func trainingPrompt(input *LogTrainingInput) string {
	var b strings.Builder
	b.WriteString("Analyze this training session for volume and recovery impact.\n")
	fmt.Fprintf(&b, "Session: %s\nDuration: %d minutes\n", input.Description, input.DurationMinutes)
	if input.RPE > 0 {
		fmt.Fprintf(&b, "RPE: %d/10\n", input.RPE)
	}
	b.WriteString("Reply with JSON only: ")
	b.WriteString(`{"volumePercent":0-200,"cadenceNote":"...","protectionTags":["..."],"xpMultiplier":0.5-2.0,"analysis":"..."}`)
	return b.String()
}

func assessmentPrompt(answers string) string {
	var b strings.Builder
	b.WriteString("Build the initial athlete profile from these onboarding answers.\n")
	b.WriteString(answers)
	b.WriteString("\nReply with JSON only: ")
	b.WriteString(`{"name","rank":"E-S","level","stats":{"strength","agility","stamina","vitality","discipline","flexibility"},`)
	b.WriteString(`"radarStats":{"power","speed","balance","coordination","technique","recovery"},"pillarLevels":{"push","pull","core","legs","mobility","endurance"},`)
	b.WriteString(`"objective","fitnessLevel","availableTime","trainingFrequency","height","weight","age","debuffs":[{"name","description","affectedExercises"}],"equipment":[],"hasGymAccess"}`)
	return b.String()
}

func chatPrompt() string {
	return "You are the user's training coach. Use the tools to read and change their profile, " +
		"skills and quests. When the onboarding interview has everything it needs, end your reply with " +
		InterviewCompleteSentinel + "."
}

func availableTime(user *fitness.UserProfile) int {
	if user == nil || user.AvailableTime <= 0 {
		return 45
	}
	return user.AvailableTime
}
