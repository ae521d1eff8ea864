package response

import (
	"strings"

	"github.com/ppiankov/maarifplan/internal/model"
)

// Diagnostic placeholders written into narrative fields the model did
// not deliver
const (
	PlaceholderExperience     = "AI tarafından detaylı içerik oluşturulamadı"
	PlaceholderEvaluation     = "AI tarafından değerlendirme soruları oluşturulamadı"
	PlaceholderEnrichment     = "AI tarafından zenginleştirme önerileri oluşturulamadı"
	PlaceholderSupport        = "AI tarafından destekleme önerileri oluşturulamadı"
	PlaceholderFamily         = "AI tarafından aile katılımı önerileri oluşturulamadı"
	PlaceholderCommunity      = "AI tarafından toplum katılımı önerileri oluşturulamadı"
	PlaceholderVideo          = "AI tarafından video metni oluşturulamadı"
	placeholderPrefix         = "AI tarafından"
	placeholderSuffix         = "oluşturulamadı"
	DefaultActivityName       = "Etkinlik"
	DefaultActivityArea       = "Genel"
	DefaultActivityAgeGroup   = "48-60 ay"
	DefaultActivityLocation   = "Sınıf içi"
	DefaultActivityGoals      = "• Kazanımlara uygun öğrenme hedefleri\n• Gelişim alanlarını destekleme"
	DefaultActivityMaterials  = "• Temel eğitim materyalleri"
	DefaultActivityProcess    = "GİRİŞ (5-7 dakika):\n• Dikkat çekici başlangıç\n• Konu tanıtımı\n\nGELİŞME (20 dakika):\n• Ana etkinlik uygulaması\n\nYANSIMA ÇEMBERİ (5-7 dakika):\n\nYönlendirici Sorular:\n• Neler öğrendik?\n• Nasıl hissettiniz?\n\nSONUÇ (3 dakika):\n• Toparlama ve kapanış"
	DefaultEvaluationProgram  = "Gözlem Formu:\n• Etkinlik süresi ve akışı değerlendirilir\n• Materyallerin uygunluğu kontrol edilir\n• Çocukların ilgi düzeyi gözlemlenir"
	DefaultEvaluationSkills   = "Gelişim Alanları:\n• Bilişsel gelişim: Problem çözme ve analitik düşünme becerileri\n• Dil gelişimi: Kelime hazinesi ve iletişim becerileri\n• Sosyal-duygusal gelişim: İşbirliği ve empati kurma\n• Motor gelişim: İnce ve kaba motor beceriler"
	DefaultEvaluationChildren = "Bireysel Gözlem:\n• Her çocuğun etkinliğe katılım düzeyi\n• Bireysel güçlü yönler ve gelişim alanları\n• Öğrenme stilleri ve tercihler\n• İlerleme durumu ve kazanımlara ulaşma düzeyi"
	DefaultActivityAdaptation = "Farklı Yaş Grupları:\n• 36-48 ay: Etkinlik basitleştirilerek uygulanır, daha kısa süreli tutulur\n• 48-60 ay: Mevcut plan uygulanır\n• 60-72 ay: Etkinlik zenginleştirilerek, ek görevlerle desteklenir\n\nFarklı Ortamlar:\n• İç mekan: Sınıf ortamında masa başı veya halı alanında uygulanır\n• Dış mekan: Bahçede veya açık alanda hareket alanı genişletilerek uygulanır\n• Ev ortamı: Aile katılımı ile evde tekrar edilebilir"
	DefaultActivityInclusion  = "Özel Gereksinimli Çocuklar:\n• Görme yetersizliği: Sesli betimlemeler, dokunsal materyaller, kabartmalı şekiller kullanılır\n• İşitme yetersizliği: Görsel ipuçları, işaret dili desteği, yazılı yönergeler verilir\n• Fiziksel yetersizlik: Erişilebilir materyaller, uyarlanmış araç-gereçler kullanılır\n• Zihinsel yetersizlik: Basitleştirilmiş yönergeler, tekrarlar, somut materyaller kullanılır\n• Otizm spektrum bozukluğu: Görsel programlar, yapılandırılmış ortam, rutinler oluşturulur\n• Dikkat eksikliği ve hiperaktivite: Kısa süreli etkinlikler, hareket araları, odaklanma destekleri sağlanır\n• Öğrenme güçlüğü: Çoklu duyusal yaklaşımlar, bireyselleştirilmiş destek verilir\n• Dil ve konuşma bozukluğu: Alternatif iletişim yöntemleri, görsel kartlar kullanılır\n\nÜstün Yetenekli Çocuklar:\n• Zenginleştirilmiş içerik ve ek görevler verilir\n• Yaratıcı düşünmeyi teşvik eden sorular sorulur\n• Liderlik rolleri ve akran öğretimi fırsatları sunulur"
)

// IsPlaceholder reports whether s is one of the diagnostic placeholders
func IsPlaceholder(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, placeholderPrefix) && strings.HasSuffix(s, placeholderSuffix)
}

// DefaultDailyPlan returns the content used for every daily-plan field
// that cannot be recovered. Curriculum categories are empty so that the
// reconciler falls back to extracted data.
func DefaultDailyPlan() model.DailyPlan {
	return model.DailyPlan{
		Experiences: model.Experiences{
			DayStart:        PlaceholderExperience,
			LearningCenters: PlaceholderExperience,
			Routines:        PlaceholderExperience,
			Activities:      PlaceholderExperience,
		},
		Evaluation: PlaceholderEvaluation,
		Differentiation: model.Differentiation{
			Enrichment: PlaceholderEnrichment,
			Support:    PlaceholderSupport,
		},
		Participation: model.Participation{
			Family:    PlaceholderFamily,
			Community: PlaceholderCommunity,
		},
	}
}

// DefaultMonthlyPlan returns an empty monthly plan carrying only its
// identifying fields
func DefaultMonthlyPlan(ageGroup, month string) model.MonthlyPlan {
	return model.MonthlyPlan{
		Name:        MonthlyPlanName(ageGroup, month),
		AgeGroup:    ageGroup,
		Month:       month,
		KeyConcepts: []string{},
	}
}

// MonthlyPlanName formats the display name of a monthly plan
func MonthlyPlanName(ageGroup, month string) string {
	return ageGroup + " Yaş " + month + " Ayı Planı"
}

// DefaultActivity returns the activity used when a response yields nothing
func DefaultActivity() model.Activity {
	return model.Activity{
		Name:               DefaultActivityName,
		Area:               DefaultActivityArea,
		AgeGroup:           DefaultActivityAgeGroup,
		Duration:           DefaultDuration,
		Location:           DefaultActivityLocation,
		Goals:              DefaultActivityGoals,
		Materials:          DefaultActivityMaterials,
		Process:            DefaultActivityProcess,
		Adaptation:         DefaultActivityAdaptation,
		Differentiation:    DefaultActivityInclusion,
		EvaluationProgram:  DefaultEvaluationProgram,
		EvaluationSkills:   DefaultEvaluationSkills,
		EvaluationChildren: DefaultEvaluationChildren,
	}
}

// DefaultVideoScript returns a one-section script carrying the video
// placeholder. Title, subject and age group are left for the caller.
func DefaultVideoScript() model.VideoScript {
	return model.VideoScript{
		Character: model.DefaultNarrator,
		Sections: []model.VideoSection{{
			Number:    1,
			Character: model.DefaultNarrator,
			Text:      PlaceholderVideo,
		}},
	}
}
