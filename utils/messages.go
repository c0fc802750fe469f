package utils

// User-facing messages, in Bengali to match the storefront locale.
const (
	MsgProductsLoaded    = "পণ্য লোড হয়েছে"
	MsgProductsStale     = "সংরক্ষিত তালিকা দেখানো হচ্ছে, হালনাগাদ করা যায়নি"
	MsgProductsLoadFail  = "পণ্য লোড করতে সমস্যা হয়েছে। আবার চেষ্টা করুন।"
	MsgProductFetched    = "পণ্য পাওয়া গেছে"
	MsgProductNotFound   = "পণ্যটি পাওয়া যায়নি"
	MsgOutOfStock        = "দুঃখিত, পণ্যটি এখন স্টকে নেই"
	MsgCategoriesFetched = "ক্যাটাগরি লোড হয়েছে"
	MsgCatalogRefreshed  = "পণ্য তালিকা হালনাগাদ হয়েছে"
	MsgRefreshThrottled  = "একটু পরে আবার চেষ্টা করুন"

	MsgCartFetched     = "কার্ট লোড হয়েছে"
	MsgAddedToCart     = "কার্টে যোগ হয়েছে"
	MsgCartUpdated     = "কার্ট আপডেট হয়েছে"
	MsgRemovedFromCart = "পণ্যটি কার্ট থেকে সরানো হয়েছে"
	MsgCartCleared     = "কার্ট খালি করা হয়েছে"
	MsgCartEmpty       = "আপনার কার্ট খালি"
	MsgBadCartIndex    = "কার্টে এমন কোনো পণ্য নেই"
	MsgQuantityLimit   = "একটি পণ্য সর্বোচ্চ ১০টি নেওয়া যাবে"
	MsgQuantityRange   = "পরিমাণ ১ থেকে ১০ এর মধ্যে হতে হবে"

	MsgNameTooShort    = "নাম কমপক্ষে ২ অক্ষরের হতে হবে"
	MsgPhoneInvalid    = "সঠিক মোবাইল নম্বর লিখুন (যেমন: ০১৭১২৩৪৫৬৭৮)"
	MsgAddressTooShort = "সম্পূর্ণ ঠিকানা লিখুন (কমপক্ষে ১০ অক্ষর)"
	MsgEmailInvalid    = "সঠিক ইমেইল ঠিকানা লিখুন"
	MsgFormInvalid     = "ফর্মে ভুল আছে, চিহ্নিত ঘরগুলো ঠিক করুন"
	MsgFormValid       = "সব তথ্য ঠিক আছে"

	MsgStepsFetched = "চেকআউট ধাপ লোড হয়েছে"
	MsgQuoteFetched = "ডেলিভারি চার্জ হিসাব হয়েছে"

	MsgOrderPlaced   = "অর্ডার সফল হয়েছে! ধন্যবাদ।"
	MsgOrderFailed   = "অর্ডার জমা দেওয়া যায়নি। আবার চেষ্টা করুন।"
	MsgOrderFetched  = "অর্ডার পাওয়া গেছে"
	MsgOrderNotFound = "অর্ডারটি খুঁজে পাওয়া যায়নি"

	MsgThemeSaved        = "থিম সংরক্ষণ করা হয়েছে"
	MsgThemeInvalid      = "থিম light অথবা dark হতে হবে"
	MsgPreferencesLoaded = "পছন্দসমূহ লোড হয়েছে"

	MsgBadRequest     = "অনুরোধটি বোঝা যায়নি"
	MsgSomethingWrong = "কিছু একটা ভুল হয়েছে"
)
