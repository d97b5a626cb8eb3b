package service

import assemblerModel "github.com/jvmatch/partnermatch/modules/assembler/model"

// excludedByAntiPersona reports whether `candidate` falls into any class
// `owner` has opted out of (spec §4.3 edge case b, §8 property 8). The
// spec enumerates the anti-persona labels but leaves classifying a given
// profile into one to the implementation; the proxies used here are:
//   - no_service_providers: candidate declares Service_Provider.
//   - no_competitors: candidate shares owner's exact normalized niche.
//   - no_beginners: candidate's trust source is Legacy (no verified or
//     recently-active history).
func excludedByAntiPersona(owner, candidate *assemblerModel.FeatureBundle) bool {
	if owner.HasAntiPersona(assemblerModel.AntiPersona("no_service_providers")) && candidate.HasPreference(assemblerModel.ServiceProvider) {
		return true
	}
	if owner.HasAntiPersona(assemblerModel.AntiPersona("no_competitors")) && owner.Niche != "" && owner.Niche == candidate.Niche {
		return true
	}
	if owner.HasAntiPersona(assemblerModel.AntiPersona("no_beginners")) && candidate.TrustSource == assemblerModel.Legacy {
		return true
	}
	return false
}

// mutuallyExcluded implements the bidirectional exclusion: either party
// being in the other's anti-persona set drops the pair entirely.
func mutuallyExcluded(a, b *assemblerModel.FeatureBundle) bool {
	return excludedByAntiPersona(a, b) || excludedByAntiPersona(b, a)
}
