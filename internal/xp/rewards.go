package xp

// Barème des récompenses d'XP. Exposé pour que les handlers et les tests
// n'aient pas à dupliquer les constantes.
const (
	RewardChatMessage       = 2  // message de chat ordinaire
	RewardStudyDoubt        = 5  // question d'étude
	RewardQuizCorrectAnswer = 10 // par bonne réponse de quiz
	RewardDailyLogin        = 5  // bonus de connexion quotidienne
	RewardCompleteProfile   = 20 // récompense unique de profil complété
)

// MedalCheckThreshold montant minimal d'XP déclenchant la vérification du
// podium. Évite de recalculer le top 3 global à chaque message de chat.
const MedalCheckThreshold = 10
